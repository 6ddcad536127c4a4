package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
)

const studentColumns = `id, name, university_id, department, admission_year, cgpa, active_backlogs`

// StudentRepository reads the students collection
type StudentRepository struct {
	db db.DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db db.DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

// studentRow mirrors the table; admission_year is free text.
type studentRow struct {
	ID             string
	Name           string
	UniversityID   string
	Department     string
	AdmissionYear  *string
	CGPA           float64
	ActiveBacklogs int
}

func (r studentRow) model() models.Student {
	s := models.Student{
		ID:             r.ID,
		Name:           r.Name,
		UniversityID:   r.UniversityID,
		Department:     r.Department,
		CGPA:           r.CGPA,
		ActiveBacklogs: r.ActiveBacklogs,
	}
	if r.AdmissionYear != nil {
		s.AdmissionYear = models.ParseYear(*r.AdmissionYear)
	}
	return s
}

func (r *studentRow) targets() []any {
	return []any{&r.ID, &r.Name, &r.UniversityID, &r.Department, &r.AdmissionYear, &r.CGPA, &r.ActiveBacklogs}
}

// List returns every student
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
	if err != nil {
		return nil, wrapQueryError("students", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		var row studentRow
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, apperrors.NewMalformedInputError("students", err)
		}
		students = append(students, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError("students", err)
	}
	return students, nil
}

// GetByID returns one student
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var row studentRow
	err := r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id).Scan(row.targets()...)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, id)
		}
		return nil, wrapQueryError("students", err)
	}
	s := row.model()
	return &s, nil
}
