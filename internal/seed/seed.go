package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
	appModels "github.com/yigit/placementhub/internal/app/models"
)

// DepartmentWriter stores catalogue rows.
type DepartmentWriter interface {
	Upsert(ctx context.Context, d appModels.Department) error
}

// CreateDefaultData upserts the department catalogue. It is idempotent and keeps
// going past individual failures, returning them joined.
func CreateDefaultData(ctx context.Context, repo DepartmentWriter, lgr zerolog.Logger) error {
	lgr.Info().Str("catalogVersion", analytics.CatalogVersion).Msg("Checking/Creating department catalogue...")

	var finalErr error
	for _, d := range analytics.CatalogRecords() {
		if err := repo.Upsert(ctx, d); err != nil {
			lgr.Error().Err(err).Str("department", d.Code).Msg("Error upserting department")
			finalErr = errors.Join(finalErr, fmt.Errorf("department %s: %w", d.Code, err))
		}
	}

	if finalErr == nil {
		lgr.Info().Int("departments", len(analytics.Catalog())).Msg("Department catalogue is up to date")
	}
	return finalErr
}
