package services

import (
	"context"
	"fmt"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

type fakeStudents struct {
	items []models.Student
	err   error
}

func (f *fakeStudents) List(context.Context) ([]models.Student, error) {
	return f.items, f.err
}

func (f *fakeStudents) GetByID(_ context.Context, id string) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, id)
}

type fakeCompanies struct {
	items []models.Company
	err   error
}

func (f *fakeCompanies) List(context.Context) ([]models.Company, error) {
	return f.items, f.err
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*models.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrCompanyNotFound, id)
}

type fakePlacements struct {
	items []models.Placement
	err   error
}

func (f *fakePlacements) List(context.Context) ([]models.Placement, error) {
	return f.items, f.err
}

type fakeDepartments struct {
	items []models.Department
	err   error
}

func (f *fakeDepartments) GetAll(context.Context) ([]models.Department, error) {
	return f.items, f.err
}

func stu(id, dept string, year int, cgpa float64) models.Student {
	return models.Student{ID: id, Department: dept, AdmissionYear: models.NewYear(year), CGPA: cgpa}
}

func plc(id, studentID, companyID string, pkg float64) models.Placement {
	return models.Placement{
		ID:           id,
		Student:      models.RefID[models.Student](studentID),
		Company:      models.RefID[models.Company](companyID),
		PackageValue: pkg,
	}
}
