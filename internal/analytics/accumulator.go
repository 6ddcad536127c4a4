package analytics

import (
	"math"
	"sort"
	"strings"
)

// DepartmentStat is the per-group aggregate handed to reports and exports.
// The same shape is used for batch partitions and company breakdowns.
type DepartmentStat struct {
	Department          string   `json:"department"`
	DepartmentName      string   `json:"departmentName,omitempty"`
	TotalStudents       int      `json:"totalStudents"`
	PlacedCount         int      `json:"placedCount"`
	PlacementPercentage float64  `json:"placementPercentage"`
	AveragePackage      float64  `json:"averagePackage"`
	HighestPackage      float64  `json:"highestPackage"`
	Companies           []string `json:"companies"`
}

// KeyFunc picks the group of a linked placement. ok=false skips the record.
type KeyFunc func(LinkedPlacement) (key string, ok bool)

// StudentKeyFunc picks the group a student counts toward for TotalStudents.
type StudentKeyFunc func(LinkedStudent) (key string, ok bool)

// ByDepartment groups by the student's canonical department code.
func ByDepartment(l LinkedPlacement) (string, bool) {
	if l.Student == nil {
		return "", false
	}
	return l.Student.Dept.Code, true
}

// StudentDepartment groups students by canonical department code.
func StudentDepartment(s LinkedStudent) (string, bool) {
	return s.Dept.Code, true
}

// ByCompany groups by company name.
func ByCompany(l LinkedPlacement) (string, bool) {
	if l.Company == nil {
		return "", false
	}
	return l.CompanyName(), true
}

type group struct {
	students  int
	placed    map[string]struct{}
	anonymous int
	offers    int
	sum       float64
	highest   float64
	companies map[string]string
}

func newGroup() *group {
	return &group{placed: make(map[string]struct{}), companies: make(map[string]string)}
}

// Accumulator keeps running counts, sums and maxima per key. It keeps the raw
// sum rather than replaying the mean so the result does not drift with insertion order.
// An Accumulator is not safe for concurrent use; each run builds its own.
type Accumulator struct {
	groups map[string]*group
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{groups: make(map[string]*group)}
}

func (a *Accumulator) get(key string) *group {
	g, ok := a.groups[key]
	if !ok {
		g = newGroup()
		a.groups[key] = g
	}
	return g
}

// AddStudent counts one student toward key's total regardless of placement.
func (a *Accumulator) AddStudent(key string) {
	a.get(key).students++
}

// AddPlacement folds one placement into key. studentID dedupes placed counts;
// a non-positive pkg marks a placement without a known package.
func (a *Accumulator) AddPlacement(key, studentID string, pkg float64, company string) {
	g := a.get(key)

	if studentID == "" {
		g.anonymous++
	} else {
		g.placed[studentID] = struct{}{}
	}

	if pkg > 0 && !math.IsNaN(pkg) && !math.IsInf(pkg, 0) {
		g.offers++
		g.sum += pkg
		if pkg > g.highest {
			g.highest = pkg
		}
	}

	name := strings.TrimSpace(company)
	if name == "" {
		return
	}
	lower := strings.ToLower(name)
	if _, seen := g.companies[lower]; !seen {
		g.companies[lower] = name
	}
}

// Fold adds every counting placement under key.
func (a *Accumulator) Fold(linked []LinkedPlacement, key KeyFunc) {
	for _, l := range linked {
		if !l.Counts() {
			continue
		}
		k, ok := key(l)
		if !ok {
			continue
		}
		a.AddPlacement(k, l.Student.ID, l.Package, l.CompanyName())
	}
}

// CountStudents adds every student under key.
func (a *Accumulator) CountStudents(students []LinkedStudent, key StudentKeyFunc) {
	for _, s := range students {
		if k, ok := key(s); ok {
			a.AddStudent(k)
		}
	}
}

// Keys returns the known group keys in ascending order.
func (a *Accumulator) Keys() []string {
	keys := make([]string, 0, len(a.groups))
	for k := range a.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stat reads the aggregate for key. Unknown keys yield a zero stat.
func (a *Accumulator) Stat(key string) DepartmentStat {
	stat := DepartmentStat{Department: key, DepartmentName: DepartmentName(key), Companies: []string{}}
	g, ok := a.groups[key]
	if !ok {
		return stat
	}

	stat.TotalStudents = g.students
	stat.PlacedCount = len(g.placed) + g.anonymous
	stat.PlacementPercentage = Percentage(stat.PlacedCount, stat.TotalStudents)
	if g.offers > 0 {
		stat.AveragePackage = g.sum / float64(g.offers)
	}
	stat.HighestPackage = g.highest

	for _, name := range g.companies {
		stat.Companies = append(stat.Companies, name)
	}
	sort.Strings(stat.Companies)
	return stat
}

// Stats reads every group.
func (a *Accumulator) Stats() map[string]DepartmentStat {
	out := make(map[string]DepartmentStat, len(a.groups))
	for k := range a.groups {
		out[k] = a.Stat(k)
	}
	return out
}

// Sorted reads every group ordered by key.
func (a *Accumulator) Sorted() []DepartmentStat {
	keys := a.Keys()
	out := make([]DepartmentStat, 0, len(keys))
	for _, k := range keys {
		out = append(out, a.Stat(k))
	}
	return out
}

// Fold aggregates linked placements by key in a single pass. TotalStudents is
// zero in the result; use FoldWithStudents when percentages are needed.
func Fold(linked []LinkedPlacement, key KeyFunc) map[string]DepartmentStat {
	acc := NewAccumulator()
	acc.Fold(linked, key)
	return acc.Stats()
}

// FoldWithStudents aggregates placements and counts every student toward its group.
func FoldWithStudents(students []LinkedStudent, skey StudentKeyFunc, linked []LinkedPlacement, key KeyFunc) *Accumulator {
	acc := NewAccumulator()
	acc.CountStudents(students, skey)
	acc.Fold(linked, key)
	return acc
}

// Percentage returns placed/total as a percentage rounded to two places,
// 0 for an empty total and never above 100.
func Percentage(placed, total int) float64 {
	if total <= 0 || placed <= 0 {
		return 0
	}
	pct := round2(float64(placed) / float64(total) * 100)
	if pct > 100 {
		return 100
	}
	return pct
}
