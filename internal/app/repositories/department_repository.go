package repositories

import (
	"context"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// DepartmentRepository handles database operations for the department catalogue
type DepartmentRepository struct {
	db db.DBTX
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db db.DBTX) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Upsert inserts or refreshes a catalogue row
func (r *DepartmentRepository) Upsert(ctx context.Context, d models.Department) error {
	query := `
		INSERT INTO departments (code, name, aliases, catalog_version, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name,
		    aliases = EXCLUDED.aliases,
		    catalog_version = EXCLUDED.catalog_version,
		    updated_at = NOW()
		WHERE departments.catalog_version <> EXCLUDED.catalog_version
		   OR departments.name <> EXCLUDED.name
	`
	aliases := d.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	_, err := r.db.Exec(ctx, query, d.Code, d.Name, aliases, d.CatalogVersion)
	return wrapQueryError("departments", err)
}

// GetAll retrieves all departments
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name, aliases, catalog_version FROM departments ORDER BY code`)
	if err != nil {
		return nil, wrapQueryError("departments", err)
	}
	defer rows.Close()

	departments := make([]models.Department, 0)
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.Code, &d.Name, &d.Aliases, &d.CatalogVersion); err != nil {
			return nil, apperrors.NewMalformedInputError("departments", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError("departments", err)
	}
	return departments, nil
}
