package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
)

const companyColumns = `id, name, industry, eligible_departments, eligible_batches, minimum_cgpa,
	max_backlogs_allowed, year_of_passing, package_offer, visiting_date`

// CompanyRepository reads the companies collection
type CompanyRepository struct {
	db db.DBTX
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db db.DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func companyTargets(c *models.Company) []any {
	return []any{
		&c.ID, &c.Name, &c.Industry, &c.EligibleDepartments, &c.EligibleBatches, &c.MinimumCGPA,
		&c.MaxBacklogsAllowed, &c.YearOfPassing, &c.PackageOffer, &c.VisitingDate,
	}
}

// List returns every company ordered by visiting date
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY visiting_date NULLS LAST, name`)
	if err != nil {
		return nil, wrapQueryError("companies", err)
	}
	defer rows.Close()

	companies := make([]models.Company, 0)
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(companyTargets(&c)...); err != nil {
			return nil, apperrors.NewMalformedInputError("companies", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError("companies", err)
	}
	return companies, nil
}

// ListVisitingAfter returns companies whose visiting date is after t
func (r *CompanyRepository) ListVisitingAfter(ctx context.Context, t time.Time) ([]models.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE visiting_date > $1 ORDER BY visiting_date, name`, t)
	if err != nil {
		return nil, wrapQueryError("companies", err)
	}
	defer rows.Close()

	companies := make([]models.Company, 0)
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(companyTargets(&c)...); err != nil {
			return nil, apperrors.NewMalformedInputError("companies", err)
		}
		companies = append(companies, c)
	}
	return companies, wrapQueryError("companies", rows.Err())
}

// GetByID returns one company
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id).Scan(companyTargets(&c)...)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCompanyNotFound, id)
		}
		return nil, wrapQueryError("companies", err)
	}
	return &c, nil
}
