package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmulenga/internhub-be/internal/models"
)

const testSecret = "test-secret-key"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, "internhub-test", 24*time.Hour)

	token, err := tm.Generate(models.Account{
		ID:           42,
		UserType:     models.UserTypeStudent,
		Email:        "alice@unza.zm",
		StudentID:    "STU26ABCDEF",
		TokenVersion: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@unza.zm", claims.Email)
	assert.Equal(t, models.UserTypeStudent, claims.UserType)
	assert.Equal(t, "STU26ABCDEF", claims.StudentID)
	assert.Empty(t, claims.CompanyName)
	assert.Equal(t, 1, claims.TokenVersion)
	assert.NotEmpty(t, claims.ID, "jti should be set")
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "internhub-test", claims.Issuer)
}

func TestTokenManager_EmployerClaims(t *testing.T) {
	tm := NewTokenManager(testSecret, "internhub-test", time.Hour)

	token, err := tm.Generate(models.Account{
		ID:          7,
		UserType:    models.UserTypeEmployer,
		Email:       "acme@corp.io",
		CompanyName: "Acme",
	})
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeEmployer, claims.UserType)
	assert.Equal(t, "Acme", claims.CompanyName)
	assert.Empty(t, claims.StudentID)
}

func TestTokenManager_Expiry(t *testing.T) {
	// A lifetime just inside the window verifies; one just past it fails.
	almostFull := NewTokenManager(testSecret, "internhub-test", 24*time.Hour-time.Minute)
	token, err := almostFull.Generate(models.Account{ID: 1, UserType: models.UserTypeAdmin})
	require.NoError(t, err)
	_, err = almostFull.Verify(token)
	assert.NoError(t, err)

	expired := NewTokenManager(testSecret, "internhub-test", -time.Minute)
	token, err = expired.Generate(models.Account{ID: 1, UserType: models.UserTypeAdmin})
	require.NoError(t, err)
	_, err = expired.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, "internhub-test", time.Hour)
	other := NewTokenManager("different-secret", "internhub-test", time.Hour)

	token, err := tm.Generate(models.Account{ID: 1, UserType: models.UserTypeStudent})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_GarbageToken(t *testing.T) {
	tm := NewTokenManager(testSecret, "internhub-test", time.Hour)
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}
