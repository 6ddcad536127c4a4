package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

func fixedDeriver(year int) *BatchDeriver {
	return &BatchDeriver{
		MinYear: MinAdmissionYear,
		Now:     func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestBatchDeriverDerive(t *testing.T) {
	d := fixedDeriver(2025)

	tests := []struct {
		name    string
		year    int
		want    string
		wantErr bool
	}{
		{name: "regular year", year: 2021, want: "2021-2025"},
		{name: "lower bound", year: 1990, want: "1990-1994"},
		{name: "next year allowed", year: 2026, want: "2026-2030"},
		{name: "before lower bound", year: 1989, wantErr: true},
		{name: "two years ahead", year: 2027, wantErr: true},
		{name: "zero", year: 0, wantErr: true},
		{name: "two digit", year: 21, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Derive(tt.year)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidYear) {
					t.Fatalf("Derive(%d) error = %v, want ErrInvalidYear", tt.year, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Derive(%d) unexpected error: %v", tt.year, err)
			}
			if got != tt.want {
				t.Errorf("Derive(%d) = %q, want %q", tt.year, got, tt.want)
			}
		})
	}
}

func TestBatchDeriverDeriveYear(t *testing.T) {
	d := fixedDeriver(2025)

	tests := []struct {
		name    string
		year    models.Year
		want    string
		wantErr bool
	}{
		{name: "numeric", year: models.NewYear(2022), want: "2022-2026"},
		{name: "numeric string", year: models.ParseYear(" 2020 "), want: "2020-2024"},
		{name: "missing", year: models.Year{}, wantErr: true},
		{name: "not a number", year: models.ParseYear("twenty"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.DeriveYear(tt.year)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidYear) {
					t.Fatalf("DeriveYear error = %v, want ErrInvalidYear", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DeriveYear unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DeriveYear = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSameAdmissionYearSameBatch(t *testing.T) {
	a, errA := DeriveBatch(2019)
	b, errB := DeriveBatch(2019)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if a != b {
		t.Errorf("batches differ for the same year: %q vs %q", a, b)
	}
	if YearOfPassing(2019) != 2023 {
		t.Errorf("YearOfPassing(2019) = %d, want 2023", YearOfPassing(2019))
	}
}
