package dto

import "github.com/cmulenga/internhub-be/internal/models"

// RegisterRequest carries the union of role-specific registration fields.
// Which fields are required depends on the user type resolved from the email.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Student fields.
	Name  string `json:"name"`
	Major string `json:"major"`

	// Employer fields.
	CompanyName    string `json:"company_name"`
	Industry       string `json:"industry"`
	CompanyWebsite string `json:"company_website"`

	// Admin fields. DepartmentKey authorizes admin registration and is
	// never persisted.
	Username      string `json:"username"`
	DepartmentKey string `json:"department_key"`

	IsActive *bool `json:"is_active"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string             `json:"token"`
	User     models.SafeAccount `json:"user"`
	UserType models.UserType    `json:"userType"`
}

type RegisterResponse struct {
	ID       int64           `json:"id"`
	UserType models.UserType `json:"userType"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
