package models

import (
	"encoding/json"
	"testing"
)

func TestYearUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		value int
		ok    bool
		set   bool
	}{
		{input: `2021`, value: 2021, ok: true, set: true},
		{input: `"2021"`, value: 2021, ok: true, set: true},
		{input: `" 2019 "`, value: 2019, ok: true, set: true},
		{input: `"twenty"`, set: true},
		{input: `2021.5`, set: true},
		{input: `""`},
		{input: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var y Year
			if err := json.Unmarshal([]byte(tt.input), &y); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			v, ok := y.Int()
			if ok != tt.ok || (ok && v != tt.value) {
				t.Errorf("Int() = %d, %v; want %d, %v", v, ok, tt.value, tt.ok)
			}
			if y.IsSet() != tt.set {
				t.Errorf("IsSet() = %v, want %v", y.IsSet(), tt.set)
			}
		})
	}
}

func TestYearInsideStudentDoesNotFailDecoding(t *testing.T) {
	raw := `[{"id":"s1","admissionYear":"n/a"},{"id":"s2","admissionYear":2020}]`
	var students []Student
	if err := json.Unmarshal([]byte(raw), &students); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := students[0].AdmissionYear.Int(); ok {
		t.Error("garbage year reported as valid")
	}
	if students[0].AdmissionYear.String() != "n/a" {
		t.Errorf("raw year = %q, want n/a", students[0].AdmissionYear.String())
	}
	if v, ok := students[1].AdmissionYear.Int(); !ok || v != 2020 {
		t.Errorf("year = %d, %v", v, ok)
	}
}

func TestYearMarshal(t *testing.T) {
	tests := []struct {
		year Year
		want string
	}{
		{year: NewYear(2022), want: `2022`},
		{year: ParseYear("soon"), want: `"soon"`},
		{year: Year{}, want: `null`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.year)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal = %s, want %s", got, tt.want)
		}
	}
}
