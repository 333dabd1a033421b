package auth

import (
	"strings"

	"github.com/cmulenga/internhub-be/internal/models"
)

// RoleResolver classifies an email address into a user type using the
// configured domain lists. It is a total function: malformed input falls back
// to the employer type, never an error.
type RoleResolver struct {
	studentDomains []string
	adminDomains   []string
}

// NewRoleResolver builds a resolver from the deployment's domain lists.
// Domains are normalized to lower case once, at construction.
func NewRoleResolver(studentDomains, adminDomains []string) *RoleResolver {
	return &RoleResolver{
		studentDomains: lowerAll(studentDomains),
		adminDomains:   lowerAll(adminDomains),
	}
}

// Resolve guesses the user type for an email address. Student domains match
// exactly or as a parent of the email's domain; admin domains match exactly.
// Addresses containing "+admin" or ".admin" classify as admin. Everything
// else, including addresses without an "@", is an employer.
func (r *RoleResolver) Resolve(email string) models.UserType {
	addr := strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(addr, "@")
	if addr == "" || at < 0 {
		return models.UserTypeEmployer
	}
	domain := addr[at+1:]

	for _, d := range r.studentDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return models.UserTypeStudent
		}
	}
	for _, d := range r.adminDomains {
		if domain == d {
			return models.UserTypeAdmin
		}
	}
	if strings.Contains(addr, "+admin") || strings.Contains(addr, ".admin") {
		return models.UserTypeAdmin
	}
	return models.UserTypeEmployer
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
