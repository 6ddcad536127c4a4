package dto

import (
	"strconv"
	"strings"

	"github.com/yigit/placementhub/internal/analytics"
)

// RowHeader is the column order of the department spreadsheet export.
var RowHeader = []string{
	"Department",
	"Total Students",
	"Placed Students",
	"Placement %",
	"Average Package",
	"Highest Package",
	"Companies",
}

// DepartmentRow is one flattened department statistic.
type DepartmentRow struct {
	Department          string  `json:"Department"`
	TotalStudents       int     `json:"Total Students"`
	PlacedStudents      int     `json:"Placed Students"`
	PlacementPercentage float64 `json:"Placement %"`
	AveragePackage      float64 `json:"Average Package"`
	HighestPackage      float64 `json:"Highest Package"`
	Companies           string  `json:"Companies"`
}

// Values renders the row as strings in RowHeader order.
func (r DepartmentRow) Values() []string {
	return []string{
		r.Department,
		strconv.Itoa(r.TotalStudents),
		strconv.Itoa(r.PlacedStudents),
		strconv.FormatFloat(r.PlacementPercentage, 'f', 2, 64),
		strconv.FormatFloat(r.AveragePackage, 'f', 2, 64),
		strconv.FormatFloat(r.HighestPackage, 'f', 2, 64),
		r.Companies,
	}
}

// DepartmentRows flattens department statistics into spreadsheet rows. A group
// without a department code is labelled Unknown.
func DepartmentRows(stats []analytics.DepartmentStat) []DepartmentRow {
	rows := make([]DepartmentRow, 0, len(stats))
	for _, s := range stats {
		dept := s.Department
		if strings.TrimSpace(dept) == "" {
			dept = analytics.UnknownLabel
		}
		rows = append(rows, DepartmentRow{
			Department:          dept,
			TotalStudents:       s.TotalStudents,
			PlacedStudents:      s.PlacedCount,
			PlacementPercentage: s.PlacementPercentage,
			AveragePackage:      s.AveragePackage,
			HighestPackage:      s.HighestPackage,
			Companies:           strings.Join(s.Companies, ", "),
		})
	}
	return rows
}
