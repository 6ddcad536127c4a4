package models

// Student is a registered student as read from the students collection.
// Department is kept as supplied; canonicalization happens in the analytics engine.
type Student struct {
	ID             string  `json:"id" db:"id" example:"stu_001"`
	Name           string  `json:"name,omitempty" db:"name" example:"Asha Menon"`
	UniversityID   string  `json:"universityId,omitempty" db:"university_id" example:"KTU21CS042"`
	Department     string  `json:"department" db:"department" example:"CSE"`
	AdmissionYear  Year    `json:"admissionYear" db:"admission_year" swaggertype:"integer" example:"2021"`
	CGPA           float64 `json:"cgpa" db:"cgpa" example:"8.2"`
	ActiveBacklogs int     `json:"activeBacklogs" db:"active_backlogs" example:"0"`
}

// Identity implements Identifiable.
func (s Student) Identity() string {
	return s.ID
}
