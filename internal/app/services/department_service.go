package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// DepartmentSource reads the stored department catalogue.
type DepartmentSource interface {
	GetAll(ctx context.Context) ([]models.Department, error)
}

// DepartmentService serves the department catalogue
type DepartmentService struct {
	departments DepartmentSource
	log         zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departments DepartmentSource, lgr zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		log:         lgr,
	}
}

// List returns the stored catalogue, falling back to the built-in one when the
// table is missing or not seeded yet.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	rows, err := s.departments.GetAll(ctx)
	switch {
	case errors.Is(err, apperrors.ErrSourceUnavailable):
		s.log.Warn().Err(err).Msg("Department table unavailable, serving built-in catalogue")
		return analytics.CatalogRecords(), nil
	case err != nil:
		return nil, err
	case len(rows) == 0:
		return analytics.CatalogRecords(), nil
	}
	return rows, nil
}
