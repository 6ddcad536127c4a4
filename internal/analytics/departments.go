package analytics

import (
	"sort"
	"strings"

	"github.com/yigit/placementhub/internal/app/models"
)

// CatalogVersion identifies the revision of the department table below.
// Bump it whenever a code or alias changes so persisted exports can be traced.
const CatalogVersion = "2024.1"

// DepartmentInfo is one row of the department catalogue.
type DepartmentInfo struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

var catalog = []DepartmentInfo{
	{Code: "CSE", Name: "Computer Science and Engineering", Aliases: []string{"CS", "Computer Science"}},
	{Code: "IT", Name: "Information Technology"},
	{Code: "ECE", Name: "Electronics and Communication Engineering", Aliases: []string{"EC", "Electronics and Communication"}},
	{Code: "ME", Name: "Mechanical Engineering", Aliases: []string{"MECH"}},
	{Code: "SFE", Name: "Safety and Fire Engineering", Aliases: []string{"FSE"}},
	{Code: "CE", Name: "Civil Engineering", Aliases: []string{"CIVIL"}},
	{Code: "EEE", Name: "Electrical and Electronics Engineering", Aliases: []string{"EE"}},
}

// lookup is keyed by the uppercased code, name and aliases.
var lookup = func() map[string]DepartmentInfo {
	m := make(map[string]DepartmentInfo, len(catalog)*4)
	for _, d := range catalog {
		m[strings.ToUpper(d.Code)] = d
		m[strings.ToUpper(d.Name)] = d
		for _, a := range d.Aliases {
			m[strings.ToUpper(a)] = d
		}
	}
	return m
}()

// Department is a canonicalized department reference.
type Department struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	// Raw is the value as it appeared on the source record.
	Raw string `json:"raw,omitempty"`
	// Unmapped is set when Raw matched nothing in the catalogue. Code is then
	// the uppercased raw value so comparisons stay case-insensitive.
	Unmapped bool `json:"unmappedDepartment,omitempty"`
}

// Catalog returns a copy of the department table ordered by code.
func Catalog() []DepartmentInfo {
	out := make([]DepartmentInfo, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// NormalizeDepartment maps a code or name in any case onto the catalogue.
func NormalizeDepartment(raw string) Department {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if info, ok := lookup[key]; ok {
		return Department{Code: info.Code, Name: info.Name, Raw: raw}
	}
	return Department{Code: key, Raw: raw, Unmapped: true}
}

// NormalizeDepartments canonicalizes a criteria list, dropping blanks and duplicates.
func NormalizeDepartments(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		d := NormalizeDepartment(r)
		if d.Code == "" {
			continue
		}
		if _, dup := seen[d.Code]; dup {
			continue
		}
		seen[d.Code] = struct{}{}
		out = append(out, d.Code)
	}
	return out
}

// DepartmentName returns the display name for a canonical code, or the code itself.
func DepartmentName(code string) string {
	if info, ok := lookup[strings.ToUpper(code)]; ok {
		return info.Name
	}
	return code
}

// CatalogRecords returns the catalogue as storable department records.
func CatalogRecords() []models.Department {
	catalog := Catalog()
	rows := make([]models.Department, 0, len(catalog))
	for _, d := range catalog {
		rows = append(rows, models.Department{
			Code:           d.Code,
			Name:           d.Name,
			Aliases:        append([]string(nil), d.Aliases...),
			CatalogVersion: CatalogVersion,
		})
	}
	return rows
}
