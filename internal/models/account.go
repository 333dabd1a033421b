package models

import "time"

// UserType discriminates the three account shapes stored in the accounts table.
type UserType string

const (
	UserTypeStudent  UserType = "student"
	UserTypeEmployer UserType = "employer"
	UserTypeAdmin    UserType = "admin"
)

// Admin role tiers.
const (
	AdminRoleModerator  = "moderator"
	AdminRoleSuperAdmin = "super_admin"
)

// Account is a single row of the accounts table. Role-specific columns are
// populated only for the matching UserType and stay zero-valued otherwise.
type Account struct {
	ID           int64     `json:"id"`
	UserType     UserType  `json:"userType"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	TokenVersion int       `json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Student fields.
	Name      string `json:"name,omitempty"`
	Major     string `json:"major,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Skills    string `json:"skills,omitempty"`

	// Employer fields.
	CompanyName    string `json:"company_name,omitempty"`
	Industry       string `json:"industry,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
	IsVerified     bool   `json:"is_verified,omitempty"`

	// Admin fields.
	Username  string `json:"username,omitempty"`
	AdminRole string `json:"role,omitempty"`
}

// SafeAccount is the projection returned to clients. It never carries the
// password hash and only exposes the fields belonging to the account's type.
type SafeAccount struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	UserType UserType `json:"userType"`

	Name      string `json:"name,omitempty"`
	Major     string `json:"major,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Skills    string `json:"skills,omitempty"`

	CompanyName    string `json:"company_name,omitempty"`
	Industry       string `json:"industry,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
	IsVerified     *bool  `json:"is_verified,omitempty"`

	Username  string `json:"username,omitempty"`
	AdminRole string `json:"role,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Safe returns the role-specific projection of the account.
func (a Account) Safe() SafeAccount {
	safe := SafeAccount{
		ID:        a.ID,
		Email:     a.Email,
		UserType:  a.UserType,
		CreatedAt: a.CreatedAt,
	}
	switch a.UserType {
	case UserTypeStudent:
		safe.Name = a.Name
		safe.Major = a.Major
		safe.StudentID = a.StudentID
		safe.Phone = a.Phone
		safe.Skills = a.Skills
	case UserTypeEmployer:
		safe.CompanyName = a.CompanyName
		safe.Industry = a.Industry
		safe.CompanyWebsite = a.CompanyWebsite
		verified := a.IsVerified
		safe.IsVerified = &verified
	case UserTypeAdmin:
		safe.Username = a.Username
		safe.AdminRole = a.AdminRole
	}
	return safe
}
