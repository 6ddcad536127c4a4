package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/analytics"
	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/app/services"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.RegisterBindings()
}

type memStudents []models.Student

func (m memStudents) List(context.Context) ([]models.Student, error) { return m, nil }

func (m memStudents) GetByID(_ context.Context, id string) (*models.Student, error) {
	for i := range m {
		if m[i].ID == id {
			s := m[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, id)
}

type memCompanies []models.Company

func (m memCompanies) List(context.Context) ([]models.Company, error) { return m, nil }

func (m memCompanies) GetByID(_ context.Context, id string) (*models.Company, error) {
	for i := range m {
		if m[i].ID == id {
			c := m[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrCompanyNotFound, id)
}

type memPlacements []models.Placement

func (m memPlacements) List(context.Context) ([]models.Placement, error) { return m, nil }

type memDepartments struct{ err error }

func (m memDepartments) GetAll(context.Context) ([]models.Department, error) { return nil, m.err }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

var refNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func fixture() (memStudents, memCompanies, memPlacements) {
	visit := refNow.Add(72 * time.Hour)
	interview := refNow.Add(24 * time.Hour)
	students := memStudents{
		{ID: "s1", Department: "CSE", AdmissionYear: models.NewYear(2021), CGPA: 8.4},
		{ID: "s2", Department: "cse", AdmissionYear: models.NewYear(2021), CGPA: 6.9},
		{ID: "s3", Department: "IT", AdmissionYear: models.NewYear(2022), CGPA: 7.8},
	}
	companies := memCompanies{
		{ID: "c1", Name: "Acme", EligibleDepartments: []string{"CSE"}, MinimumCGPA: 7.5, PackageOffer: "12 LPA", VisitingDate: &visit},
		{ID: "c2", Name: "Globex", EligibleDepartments: []string{"IT"}, MinimumCGPA: 7},
	}
	placements := memPlacements{
		{ID: "p1", Student: models.RefID[models.Student]("s1"), Company: models.RefID[models.Company]("c1"), PackageValue: 12, Status: models.StatusOffered},
		{ID: "p2", Student: models.RefID[models.Student]("s3"), Company: models.RefID[models.Company]("c2"), PackageValue: 6, Status: models.StatusAccepted},
		{ID: "p3", Student: models.RefID[models.Student]("s2"), Company: models.RefID[models.Company]("c1"), Status: models.StatusInterviewScheduled, InterviewDate: &interview},
	}
	return students, companies, placements
}

func newRouter() *gin.Engine {
	students, companies, placements := fixture()
	deriver := &analytics.BatchDeriver{MinYear: analytics.MinAdmissionYear, Now: func() time.Time { return refNow }}
	lgr := zerolog.Nop()

	loader := services.NewSnapshotLoader(students, companies, placements, time.Second, lgr)
	analyticsCtl := NewAnalyticsController(services.NewAnalyticsService(loader, analytics.NewProjector(deriver), lgr))
	eligibilityCtl := NewEligibilityController(services.NewEligibilityService(students, companies, analytics.NewMatcher(deriver), lgr))
	departmentCtl := NewDepartmentController(services.NewDepartmentService(memDepartments{err: apperrors.ErrSourceUnavailable}, lgr))

	r := gin.New()
	r.GET("/departments", departmentCtl.GetAllDepartments)
	r.GET("/analytics/dashboard", analyticsCtl.GetDashboard)
	r.GET("/analytics/departments", analyticsCtl.GetDepartments)
	r.GET("/analytics/batches", analyticsCtl.GetBatches)
	r.GET("/analytics/batches/:batch", analyticsCtl.GetBatch)
	r.GET("/analytics/companies", analyticsCtl.GetCompanies)
	r.POST("/analytics/project", analyticsCtl.Project)
	r.POST("/eligibility/evaluate", eligibilityCtl.Evaluate)
	r.GET("/eligibility/students/:studentId", eligibilityCtl.ForStudent)
	r.GET("/eligibility/students/:studentId/companies/:companyId", eligibilityCtl.ForStudentAndCompany)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.Success {
		t.Fatalf("success = false: %s", w.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return resp.Error.Code
}

func TestGetDashboard(t *testing.T) {
	w := do(newRouter(), http.MethodGet, "/analytics/dashboard?now=2025-03-01T12:00:00Z", "")

	var got dto.DashboardResponse
	decodeData(t, w, &got)
	if got.TotalStudents != 3 || got.PlacedStudents != 2 {
		t.Errorf("students = %d / %d, want 3 / 2", got.TotalStudents, got.PlacedStudents)
	}
	if got.PlacementRate != 66.7 {
		t.Errorf("PlacementRate = %v, want 66.7", got.PlacementRate)
	}
	if got.UpcomingInterviewsCount != 1 {
		t.Errorf("UpcomingInterviewsCount = %d, want 1", got.UpcomingInterviewsCount)
	}
	if got.CatalogVersion != analytics.CatalogVersion {
		t.Errorf("CatalogVersion = %q", got.CatalogVersion)
	}
}

func TestGetDashboardRejectsBadTime(t *testing.T) {
	w := do(newRouter(), http.MethodGet, "/analytics/dashboard?now=tomorrow", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w); code != dto.ErrorCodeBadRequest {
		t.Errorf("code = %s, want %s", code, dto.ErrorCodeBadRequest)
	}
}

func TestGetDepartments(t *testing.T) {
	r := newRouter()

	var got dto.DepartmentAnalyticsResponse
	decodeData(t, do(r, http.MethodGet, "/analytics/departments", ""), &got)
	if !got.DataAvailable || len(got.Departments) != 2 {
		t.Fatalf("departments = %+v", got)
	}

	var rows []dto.DepartmentRow
	decodeData(t, do(r, http.MethodGet, "/analytics/departments?format=rows", ""), &rows)
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want 2", rows)
	}
	for _, row := range rows {
		if row.Department == "CSE" && (row.TotalStudents != 2 || row.PlacedStudents != 1 || row.Companies != "Acme") {
			t.Errorf("CSE row = %+v", row)
		}
	}
}

func TestGetBatch(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "known batch", target: "/analytics/batches/2021-2025", status: http.StatusOK},
		{name: "malformed label", target: "/analytics/batches/2021", status: http.StatusBadRequest},
		{name: "empty batch", target: "/analytics/batches/2010-2014", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(r, http.MethodGet, tt.target, ""); w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}

	var list dto.BatchAnalyticsResponse
	decodeData(t, do(r, http.MethodGet, "/analytics/batches", ""), &list)
	if len(list.Batches) != 2 || list.Batches[0].Batch != "2021-2025" {
		t.Errorf("batches = %+v", list.Batches)
	}
}

func TestGetCompanies(t *testing.T) {
	r := newRouter()

	var got dto.CompanyAnalyticsResponse
	decodeData(t, do(r, http.MethodGet, "/analytics/companies?department=cse&company=acme", ""), &got)
	if len(got.Companies) != 1 || got.Companies[0].PlacedCount != 1 || got.Companies[0].HighestPackage != 12 {
		t.Errorf("breakdown = %+v", got.Companies)
	}

	decodeData(t, do(r, http.MethodGet, "/analytics/companies?department=ME&company=Acme", ""), &got)
	if got.DataAvailable || got.Companies[0].PlacedCount != 0 {
		t.Errorf("empty breakdown = %+v", got)
	}
}

func TestProject(t *testing.T) {
	body := `{
		"students": [{"id": "a", "department": "ece", "admissionYear": "2022", "cgpa": 8}],
		"companies": [{"id": "x", "name": "Initech", "eligibleDepartments": ["ECE"]}],
		"placements": [{"id": "p", "studentId": "a", "companyId": "x", "packageValue": 9}]
	}`
	var got analytics.Report
	decodeData(t, do(newRouter(), http.MethodPost, "/analytics/project", body), &got)
	if got.DashboardSummary.PlacedStudents != 1 || got.DashboardSummary.PlacementRate != 100 {
		t.Errorf("summary = %+v", got.DashboardSummary)
	}

	mixed := `{
		"students": [{"id": "a", "department": "ece", "admissionYear": "2022", "cgpa": 8},
			{"id": "b", "department": "ece", "admissionYear": "2022", "cgpa": 8}],
		"companies": [{"id": "x", "name": "Initech", "eligibleDepartments": ["ECE"]}],
		"placements": [{"id": "p", "studentId": "a", "companyId": "x", "packageValue": 9, "status": "Offered"},
			{"id": "q", "studentId": "b", "companyId": "x", "packageValue": 20, "status": "Selected"}]
	}`
	var partial analytics.Report
	decodeData(t, do(newRouter(), http.MethodPost, "/analytics/project", mixed), &partial)
	if partial.DashboardSummary.PlacedStudents != 1 || partial.DashboardSummary.HighestPackageOverall != 9 {
		t.Errorf("summary with unknown status = %+v", partial.DashboardSummary)
	}
	if len(partial.Issues) != 1 || partial.Issues[0].Kind != analytics.IssueUnknownStatus || partial.Issues[0].RecordID != "q" {
		t.Errorf("issues = %+v, want one unknown status for q", partial.Issues)
	}

	w := do(newRouter(), http.MethodPost, "/analytics/project", `{"students": "nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w); code != dto.ErrorCodeMalformedInput {
		t.Errorf("code = %s, want %s", code, dto.ErrorCodeMalformedInput)
	}
}

func TestEvaluate(t *testing.T) {
	body := `{
		"student": {"id": "s1", "department": "CSE", "admissionYear": 2021, "cgpa": 8.2},
		"criteria": {"eligibleDepartments": ["CSE"], "minimumCgpa": 9.0, "yearOfPassing": 2025}
	}`
	var got dto.EligibilityResponse
	decodeData(t, do(newRouter(), http.MethodPost, "/eligibility/evaluate", body), &got)
	if got.Eligible || len(got.Reasons) != 1 || got.Reasons[0].Criterion != analytics.CriterionCGPA {
		t.Errorf("result = %+v, want a single CGPA reason", got.EligibilityResult)
	}

	invalid := []string{
		`{"student": {"department": "CSE", "cgpa": 11}}`,
		`{"student": {"department": "CSE"}, "criteria": {"eligibleBatches": ["2021-25"]}}`,
	}
	for _, body := range invalid {
		w := do(newRouter(), http.MethodPost, "/eligibility/evaluate", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400 for %s", w.Code, body)
		}
		if code := errorCode(t, w); code != dto.ErrorCodeValidationFailed {
			t.Errorf("code = %s, want %s", code, dto.ErrorCodeValidationFailed)
		}
	}
}

func TestForStudent(t *testing.T) {
	r := newRouter()

	var all dto.CompanyEligibilityResponse
	decodeData(t, do(r, http.MethodGet, "/eligibility/students/s1", ""), &all)
	if len(all.Companies) != 2 || all.EligibleCount != 1 {
		t.Errorf("all = %+v", all)
	}
	if all.Companies[0].Company.Name != "Acme" {
		t.Errorf("first company = %s, want dated Acme first", all.Companies[0].Company.Name)
	}

	var upcoming dto.CompanyEligibilityResponse
	decodeData(t, do(r, http.MethodGet, "/eligibility/students/s1?upcoming=true&now=2025-03-01T12:00:00Z", ""), &upcoming)
	if len(upcoming.Companies) != 1 || upcoming.Companies[0].Company.ID != "c1" {
		t.Errorf("upcoming = %+v", upcoming.Companies)
	}

	if w := do(r, http.MethodGet, "/eligibility/students/s1?upcoming=maybe", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad upcoming status = %d, want 400", w.Code)
	}
	if w := do(r, http.MethodGet, "/eligibility/students/nobody", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown student status = %d, want 404", w.Code)
	}
}

func TestForStudentAndCompany(t *testing.T) {
	r := newRouter()

	var got dto.EligibilityResponse
	decodeData(t, do(r, http.MethodGet, "/eligibility/students/s2/companies/c1", ""), &got)
	if got.Eligible || !got.Failed(analytics.CriterionCGPA) {
		t.Errorf("s2 at Acme = %+v, want a CGPA failure", got.EligibilityResult)
	}
	if got.StudentID != "s2" || got.CompanyID != "c1" {
		t.Errorf("ids = %s / %s", got.StudentID, got.CompanyID)
	}

	w := do(r, http.MethodGet, "/eligibility/students/s1/companies/c9", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetAllDepartmentsFallsBackToCatalogue(t *testing.T) {
	var got dto.DepartmentListResponse
	decodeData(t, do(newRouter(), http.MethodGet, "/departments", ""), &got)
	if got.CatalogVersion != analytics.CatalogVersion || len(got.Departments) == 0 {
		t.Errorf("catalogue = %+v", got)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		status int
	}{
		{name: "no database", status: http.StatusOK},
		{name: "database up", db: pinger{}, status: http.StatusOK},
		{name: "database down", db: pinger{err: errors.New("refused")}, status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", NewHealthController(tt.db).Health)
			w := do(r, http.MethodGet, "/healthz", "")
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if w.Code == http.StatusServiceUnavailable {
				var resp dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == nil {
					t.Fatalf("decode error body: %v", err)
				}
				if resp.Error.Code != dto.ErrorCodeDatabaseError || resp.Error.Severity != dto.ErrorSeverityCritical {
					t.Errorf("error = %s %s, want %s %s", resp.Error.Code, resp.Error.Severity, dto.ErrorCodeDatabaseError, dto.ErrorSeverityCritical)
				}
			}
		})
	}
}
