package repositories

import (
	"context"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// PlacementRepository reads the placements collection
type PlacementRepository struct {
	db db.DBTX
}

// NewPlacementRepository creates a new placement repository
func NewPlacementRepository(db db.DBTX) *PlacementRepository {
	return &PlacementRepository{db: db}
}

type placementRow struct {
	ID            string
	StudentID     string
	CompanyID     string
	PackageValue  float64
	Status        string
	InterviewDate *time.Time
	JoiningDate   *time.Time
}

// model converts the row. A status outside the vocabulary is kept verbatim so
// the record is linked but never counted as placed.
func (r placementRow) model() models.Placement {
	status, err := models.ParseStatus(r.Status)
	if err != nil {
		status = models.Status(r.Status)
	}
	return models.Placement{
		ID:            r.ID,
		Student:       models.RefID[models.Student](r.StudentID),
		Company:       models.RefID[models.Company](r.CompanyID),
		PackageValue:  r.PackageValue,
		Status:        status,
		InterviewDate: r.InterviewDate,
		JoiningDate:   r.JoiningDate,
	}
}

// List returns every placement record with bare references
func (r *PlacementRepository) List(ctx context.Context) ([]models.Placement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, company_id, package_value, status, interview_date, joining_date
		FROM placements
		ORDER BY id`)
	if err != nil {
		return nil, wrapQueryError("placements", err)
	}
	defer rows.Close()

	placements := make([]models.Placement, 0)
	for rows.Next() {
		var row placementRow
		if err := rows.Scan(&row.ID, &row.StudentID, &row.CompanyID, &row.PackageValue,
			&row.Status, &row.InterviewDate, &row.JoiningDate); err != nil {
			return nil, apperrors.NewMalformedInputError("placements", err)
		}
		placements = append(placements, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError("placements", err)
	}
	return placements, nil
}
