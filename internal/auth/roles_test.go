package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmulenga/internhub-be/internal/models"
)

func testResolver() *RoleResolver {
	return NewRoleResolver(
		[]string{"unza.zm", "cs.unza.zm"},
		[]string{"admin.university.edu", "it.university.edu"},
	)
}

func TestRoleResolver_Resolve(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  models.UserType
	}{
		{"student domain", "alice@unza.zm", models.UserTypeStudent},
		{"student domain listed explicitly", "bob@cs.unza.zm", models.UserTypeStudent},
		{"student subdomain", "carol@eng.unza.zm", models.UserTypeStudent},
		{"student domain uppercase", "Dave@UNZA.ZM", models.UserTypeStudent},
		{"admin domain", "staff@admin.university.edu", models.UserTypeAdmin},
		{"admin domain exact only", "x@mail.it.university.edu", models.UserTypeEmployer},
		{"admin substring in domain", "x@sub.admin.university.edu", models.UserTypeAdmin},
		{"plus admin marker", "jane+admin@gmail.com", models.UserTypeAdmin},
		{"dot admin marker", "it.admin@outlook.com", models.UserTypeAdmin},
		{"student domain wins over admin marker", "x.admin@unza.zm", models.UserTypeStudent},
		{"plain employer", "acme@corp.io", models.UserTypeEmployer},
		{"empty input", "", models.UserTypeEmployer},
		{"no at sign", "no-at-sign", models.UserTypeEmployer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testResolver().Resolve(tt.email))
		})
	}
}

func TestRoleResolver_NeverPanicsOnGarbage(t *testing.T) {
	r := testResolver()
	for _, email := range []string{"@", "@@", "@unza.zm", "a@", "   ", "\x00"} {
		assert.NotPanics(t, func() { r.Resolve(email) }, "input %q", email)
	}
}
