package models

import "time"

// Internship is a posting owned by an employer account. CompanyName and
// CompanyWebsite are joined from the owning account on reads.
type Internship struct {
	ID           int64     `json:"id"`
	EmployerID   int64     `json:"employer_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements,omitempty"`
	Deadline     time.Time `json:"deadline"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	CompanyName    string `json:"company_name,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
}
