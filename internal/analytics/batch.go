package analytics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// ProgramYears is the fixed length of a degree programme. Batch labels and
// year of passing are both derived from it; lateral entry is not modelled.
const ProgramYears = 4

// MinAdmissionYear is the earliest admission year accepted by default.
const MinAdmissionYear = 1990

// BatchDeriver maps admission years to cohort labels.
type BatchDeriver struct {
	MinYear int
	Now     func() time.Time
}

// NewBatchDeriver returns a deriver bounded by MinAdmissionYear and the wall clock.
func NewBatchDeriver() *BatchDeriver {
	return &BatchDeriver{MinYear: MinAdmissionYear, Now: time.Now}
}

var defaultDeriver = NewBatchDeriver()

// DeriveBatch labels an admission year using the default bounds.
func DeriveBatch(admissionYear int) (string, error) {
	return defaultDeriver.Derive(admissionYear)
}

// Derive returns "{year}-{year+4}". Years before MinYear or after next year fail with ErrInvalidYear.
func (d *BatchDeriver) Derive(admissionYear int) (string, error) {
	if err := d.check(admissionYear); err != nil {
		return "", err
	}
	return BatchLabel(admissionYear), nil
}

// DeriveYear is Derive for a year as supplied on a record, which may be missing or non-numeric.
func (d *BatchDeriver) DeriveYear(y models.Year) (string, error) {
	if !y.IsSet() {
		return "", fmt.Errorf("%w: missing", apperrors.ErrInvalidYear)
	}
	v, ok := y.Int()
	if !ok {
		return "", fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidYear, y.String())
	}
	return d.Derive(v)
}

// YearOfPassing returns the year a student admitted in admissionYear graduates.
func YearOfPassing(admissionYear int) int {
	return admissionYear + ProgramYears
}

// BatchLabel formats a label without bounds checking.
func BatchLabel(admissionYear int) string {
	return strconv.Itoa(admissionYear) + "-" + strconv.Itoa(YearOfPassing(admissionYear))
}

func (d *BatchDeriver) check(year int) error {
	minYear := d.MinYear
	if minYear == 0 {
		minYear = MinAdmissionYear
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	maxYear := now().Year() + 1

	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: %d outside %d..%d", apperrors.ErrInvalidYear, year, minYear, maxYear)
	}
	return nil
}
