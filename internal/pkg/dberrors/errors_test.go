package dberrors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifiers(t *testing.T) {
	unique := fmt.Errorf("upsert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "departments_pkey"})
	missing := fmt.Errorf("list: %w", &pgconn.PgError{Code: "42P01"})

	if !IsUndefinedTable(missing) || IsUndefinedTable(unique) {
		t.Error("undefined table misclassified")
	}
	if !IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)) || IsNoRows(missing) {
		t.Error("no rows misclassified")
	}
}
