package models

import "time"

// Placement is a placement or application record. Student and Company may arrive
// either as bare identifiers or as embedded records.
type Placement struct {
	ID            string       `json:"id" db:"id" example:"plc_1001"`
	Student       Ref[Student] `json:"studentId" db:"student_id" swaggertype:"string" example:"stu_001"`
	Company       Ref[Company] `json:"companyId" db:"company_id" swaggertype:"string" example:"cmp_acme"`
	PackageValue  float64      `json:"packageValue,omitempty" db:"package_value" example:"12"` // lakhs per annum
	Status        Status       `json:"status,omitempty" db:"status" example:"Offered"`
	InterviewDate *time.Time   `json:"interviewDate,omitempty" db:"interview_date"`
	JoiningDate   *time.Time   `json:"joiningDate,omitempty" db:"joining_date"`
}
