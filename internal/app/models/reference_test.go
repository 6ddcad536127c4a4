package models

import (
	"encoding/json"
	"testing"
)

func TestRefUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		id       string
		embedded bool
		wantErr  bool
	}{
		{name: "string id", input: `"s1"`, id: "s1"},
		{name: "numeric id", input: `42`, id: "42"},
		{name: "embedded object", input: `{"id":"s7","name":"Asha","department":"CSE"}`, id: "s7", embedded: true},
		{name: "null", input: `null`},
		{name: "fractional id", input: `4.5`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
		{name: "array", input: `["s1"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref[Student]
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) succeeded with %+v, want error", tt.input, r)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if r.ID != tt.id {
				t.Errorf("ID = %q, want %q", r.ID, tt.id)
			}
			if r.Embedded() != tt.embedded {
				t.Errorf("Embedded = %v, want %v", r.Embedded(), tt.embedded)
			}
		})
	}
}

func TestRefEmbeddedKeepsRecord(t *testing.T) {
	var p Placement
	raw := `{"id":"p1","studentId":{"id":"s1","department":"IT","admissionYear":2022,"cgpa":7.4},"companyId":"c1"}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !p.Student.Embedded() || p.Student.Value.Department != "IT" || p.Student.Value.CGPA != 7.4 {
		t.Errorf("student ref = %+v, want embedded IT student", p.Student)
	}
	if y, ok := p.Student.Value.AdmissionYear.Int(); !ok || y != 2022 {
		t.Errorf("admission year = %v %v, want 2022", y, ok)
	}
	if p.Company.Embedded() || p.Company.ID != "c1" {
		t.Errorf("company ref = %+v, want bare c1", p.Company)
	}
}

func TestRefMarshal(t *testing.T) {
	bare, err := json.Marshal(RefID[Company]("c1"))
	if err != nil || string(bare) != `"c1"` {
		t.Errorf("bare = %s, %v", bare, err)
	}
	empty, err := json.Marshal(Ref[Company]{})
	if err != nil || string(empty) != `null` {
		t.Errorf("empty = %s, %v", empty, err)
	}

	var back Ref[Company]
	data, _ := json.Marshal(RefTo(Company{ID: "c2", Name: "Acme"}))
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Embedded() || back.Value.Name != "Acme" || back.ID != "c2" {
		t.Errorf("embedded round trip = %+v", back)
	}
}

func TestRefIsZero(t *testing.T) {
	if !(Ref[Student]{}).IsZero() {
		t.Error("empty ref should be zero")
	}
	if RefID[Student]("s1").IsZero() {
		t.Error("bare ref should not be zero")
	}
}
