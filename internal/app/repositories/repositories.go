package repositories

import (
	"fmt"

	"github.com/yigit/placementhub/internal/db"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/dberrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *StudentRepository
	CompanyRepository    *CompanyRepository
	PlacementRepository  *PlacementRepository
	DepartmentRepository *DepartmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db db.DBTX) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(db),
		CompanyRepository:    NewCompanyRepository(db),
		PlacementRepository:  NewPlacementRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
	}
}

// wrapQueryError tags database failures with the collection name. A missing
// table means the source is not available yet.
func wrapQueryError(collection string, err error) error {
	switch {
	case err == nil:
		return nil
	case dberrors.IsUndefinedTable(err):
		return fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnavailable, collection, err)
	default:
		return fmt.Errorf("query %s: %w", collection, err)
	}
}
