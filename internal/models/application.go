package models

import "time"

// Application statuses, in the order employers move them through.
const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusReviewed = "Reviewed"
	ApplicationStatusAccepted = "Accepted"
	ApplicationStatusRejected = "Rejected"
)

// ValidApplicationStatus reports whether s is one of the accepted status values.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application links a student to an internship. Student, internship, and
// company fields are joined on reads for dashboard views.
type Application struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"student_id"`
	InternshipID int64     `json:"internship_id"`
	CoverLetter  string    `json:"cover_letter,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	StudentName     string `json:"student_name,omitempty"`
	StudentEmail    string `json:"student_email,omitempty"`
	StudentMajor    string `json:"major,omitempty"`
	InternshipTitle string `json:"internship_title,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
}
