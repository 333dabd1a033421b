package dto

// CreateInternshipRequest is the body for posting a new internship.
// Deadline uses YYYY-MM-DD. EmployerID is honored for admins only; employer
// callers always post under their own account.
type CreateInternshipRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Deadline     string `json:"deadline"`
	EmployerID   int64  `json:"employer_id"`
}

type CreateApplicationRequest struct {
	InternshipID int64  `json:"internship_id"`
	CoverLetter  string `json:"cover_letter"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}
