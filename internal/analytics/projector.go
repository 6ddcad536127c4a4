package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
)

// Input is one snapshot of the three source collections plus the caller's clock.
type Input struct {
	Students   []models.Student   `json:"students"`
	Companies  []models.Company   `json:"companies"`
	Placements []models.Placement `json:"placements"`
	// Now decides which interviews are upcoming. Zero means time.Now().
	Now time.Time `json:"now"`
}

// BatchReport is the department breakdown within one cohort.
type BatchReport struct {
	Batch               string           `json:"batch"`
	TotalStudents       int              `json:"totalStudents"`
	PlacedCount         int              `json:"placedCount"`
	PlacementPercentage float64          `json:"placementPercentage"`
	Departments         []DepartmentStat `json:"departments"`
}

// CompanyStat is the company card for one department and company.
type CompanyStat struct {
	Department     string  `json:"department"`
	Company        string  `json:"company"`
	PlacedCount    int     `json:"placedCount"`
	AveragePackage float64 `json:"averagePackage"`
	HighestPackage float64 `json:"highestPackage"`
}

// DashboardSummary is the single rolled-up record shown on the admin dashboard.
type DashboardSummary struct {
	TotalStudents           int     `json:"totalStudents"`
	PlacedStudents          int     `json:"placedStudents"`
	PlacementRate           float64 `json:"placementRate"`
	AveragePackageOverall   float64 `json:"averagePackageOverall"`
	HighestPackageOverall   float64 `json:"highestPackageOverall"`
	TotalCompanies          int     `json:"totalCompanies"`
	UpcomingInterviewsCount int     `json:"upcomingInterviewsCount"`
	UnresolvedPlacements    int     `json:"unresolvedPlacements"`
	DataAvailable           bool    `json:"dataAvailable"`
}

// Report carries every view derived from one snapshot.
type Report struct {
	DataAvailable    bool              `json:"dataAvailable"`
	CatalogVersion   string            `json:"catalogVersion"`
	GeneratedAt      time.Time         `json:"generatedAt"`
	ByDepartment     []DepartmentStat  `json:"byDepartment"`
	ByBatch          []BatchReport     `json:"byBatch"`
	ByCompany        []CompanyStat     `json:"byCompany"`
	DashboardSummary DashboardSummary  `json:"dashboardSummary"`
	Placements       []LinkedPlacement `json:"-"`
	Issues           []Issue           `json:"issues"`
}

// Projector builds reports from snapshots. It holds no per-call state and
// may be shared between goroutines.
type Projector struct {
	joiner *Joiner
}

// NewProjector returns a Projector deriving batches with d.
func NewProjector(d *BatchDeriver) *Projector {
	return &Projector{joiner: NewJoiner(d)}
}

// Project joins the snapshot and shapes every view. Empty collections yield a
// zeroed report with DataAvailable false; nothing is fabricated.
func (p *Projector) Project(in Input) Report {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	report := Report{
		CatalogVersion: CatalogVersion,
		GeneratedAt:    now,
		ByDepartment:   []DepartmentStat{},
		ByBatch:        []BatchReport{},
		ByCompany:      []CompanyStat{},
		Issues:         []Issue{},
	}
	if len(in.Students) == 0 && len(in.Placements) == 0 {
		return report
	}

	joined := p.joiner.Join(in.Students, in.Companies, in.Placements)
	report.DataAvailable = true
	report.Placements = joined.Placements
	report.Issues = append(report.Issues, joined.Issues...)

	report.ByDepartment = FoldWithStudents(joined.Students, StudentDepartment, joined.Placements, ByDepartment).Sorted()
	report.ByBatch = projectBatches(joined)
	report.ByCompany = projectCompanies(joined.Placements)
	report.DashboardSummary = summarize(joined, now)
	return report
}

// Summary is Project restricted to the dashboard record.
func (p *Projector) Summary(in Input) DashboardSummary {
	return p.Project(in).DashboardSummary
}

// projectBatches partitions students by batch and aggregates each partition by
// department. Students with an invalid admission year appear in no batch.
func projectBatches(joined Joined) []BatchReport {
	students := make(map[string][]LinkedStudent)
	for _, s := range joined.Students {
		if s.Batch != "" {
			students[s.Batch] = append(students[s.Batch], s)
		}
	}
	placements := make(map[string][]LinkedPlacement)
	for _, l := range joined.Placements {
		if l.Student != nil && l.Student.Batch != "" {
			placements[l.Student.Batch] = append(placements[l.Student.Batch], l)
		}
	}

	labels := make([]string, 0, len(students))
	for label := range students {
		labels = append(labels, label)
	}
	for label := range placements {
		if _, ok := students[label]; !ok {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	out := make([]BatchReport, 0, len(labels))
	for _, label := range labels {
		acc := FoldWithStudents(students[label], StudentDepartment, placements[label], ByDepartment)
		br := BatchReport{Batch: label, TotalStudents: len(students[label]), Departments: acc.Sorted()}
		br.PlacedCount = Fold(placements[label], constantKey)[""].PlacedCount
		br.PlacementPercentage = Percentage(br.PlacedCount, br.TotalStudents)
		out = append(out, br)
	}
	return out
}

// projectCompanies builds a card for every department and company pair seen
// among counting placements.
func projectCompanies(linked []LinkedPlacement) []CompanyStat {
	type pair struct{ dept, company string }
	seen := make(map[pair]struct{})
	var pairs []pair
	for _, l := range linked {
		if !l.Counts() {
			continue
		}
		k := pair{l.DepartmentCode(), l.CompanyName()}
		lk := pair{k.dept, strings.ToLower(k.company)}
		if _, ok := seen[lk]; ok {
			continue
		}
		seen[lk] = struct{}{}
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].dept != pairs[j].dept {
			return pairs[i].dept < pairs[j].dept
		}
		return strings.ToLower(pairs[i].company) < strings.ToLower(pairs[j].company)
	})

	out := make([]CompanyStat, 0, len(pairs))
	for _, k := range pairs {
		out = append(out, CompanyBreakdown(linked, k.dept, k.company))
	}
	return out
}

// CompanyBreakdown restricts linked placements to one department and company
// (both case-insensitive) and aggregates that subset. The department is a raw
// or canonical code; blank selects students without a department.
func CompanyBreakdown(linked []LinkedPlacement, department, company string) CompanyStat {
	cs := CompanyStat{Department: NormalizeDepartment(department).Code, Company: strings.TrimSpace(company)}

	var subset []LinkedPlacement
	for _, l := range linked {
		if l.Counts() && l.DepartmentCode() == cs.Department && strings.EqualFold(l.CompanyName(), cs.Company) {
			if len(subset) == 0 {
				cs.Company = l.CompanyName()
			}
			subset = append(subset, l)
		}
	}

	stat := Fold(subset, constantKey)[""]
	cs.PlacedCount = stat.PlacedCount
	cs.AveragePackage = stat.AveragePackage
	cs.HighestPackage = stat.HighestPackage
	return cs
}

func summarize(joined Joined, now time.Time) DashboardSummary {
	sum := DashboardSummary{
		TotalStudents: len(joined.Students),
		DataAvailable: true,
	}

	companies := make(map[string]struct{})
	for _, l := range joined.Placements {
		if l.Unresolved {
			sum.UnresolvedPlacements++
		}
		if l.Company != nil {
			companies[companyKey(*l.Company)] = struct{}{}
		}
	}
	sum.UpcomingInterviewsCount = UpcomingInterviews(joined.Placements, now)

	all := Fold(joined.Placements, constantKey)[""]
	sum.PlacedStudents = all.PlacedCount
	sum.PlacementRate = PlacementRate(sum.PlacedStudents, sum.TotalStudents)
	sum.AveragePackageOverall = round2(all.AveragePackage)
	sum.HighestPackageOverall = all.HighestPackage
	sum.TotalCompanies = len(companies)
	return sum
}

// UpcomingInterviews counts scheduled interviews that fall after now.
func UpcomingInterviews(linked []LinkedPlacement, now time.Time) int {
	n := 0
	for _, l := range linked {
		if l.Record.Status == models.StatusInterviewScheduled && l.Record.InterviewDate != nil && l.Record.InterviewDate.After(now) {
			n++
		}
	}
	return n
}

// PlacementRate is placed/total*100 rounded to one decimal; 0 when total is 0.
func PlacementRate(placed, total int) float64 {
	if total <= 0 || placed <= 0 {
		return 0
	}
	rate := round1(float64(placed) / float64(total) * 100)
	if rate > 100 {
		return 100
	}
	return rate
}

// constantKey folds everything into a single group.
func constantKey(LinkedPlacement) (string, bool) {
	return "", true
}

func companyKey(c models.Company) string {
	if c.ID != "" {
		return "id:" + c.ID
	}
	return "name:" + strings.ToLower(strings.TrimSpace(c.Name))
}
