package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

func TestDepartmentServiceList(t *testing.T) {
	stored := []models.Department{{Code: "CSE", Name: "Computer Science and Engineering", CatalogVersion: "2023.9"}}
	unavailable := fmt.Errorf("%w: departments", apperrors.ErrSourceUnavailable)
	boom := errors.New("timeout")

	tests := []struct {
		name    string
		source  *fakeDepartments
		want    int
		wantErr error
	}{
		{name: "stored rows", source: &fakeDepartments{items: stored}, want: 1},
		{name: "empty table", source: &fakeDepartments{}, want: 7},
		{name: "missing table", source: &fakeDepartments{err: unavailable}, want: 7},
		{name: "other failure", source: &fakeDepartments{err: boom}, wantErr: boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDepartmentService(tt.source, zerolog.Nop()).List(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d departments, want %d", len(got), tt.want)
			}
		})
	}
}
