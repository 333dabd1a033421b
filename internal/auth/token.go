package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cmulenga/internhub-be/internal/models"
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed claims. Callers must not distinguish further.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload issued on login. TokenVersion must match the
// account's stored version for account-loading operations to accept the token.
type Claims struct {
	UserID       int64           `json:"id"`
	Email        string          `json:"email"`
	UserType     models.UserType `json:"role"`
	CompanyName  string          `json:"company,omitempty"`
	StudentID    string          `json:"studentId,omitempty"`
	TokenVersion int             `json:"ver"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed JWT for the account, embedding the role and the
// role-specific extra claim (company name for employers, student number for
// students).
func (t *TokenManager) Generate(acct models.Account) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:       acct.ID,
		Email:        acct.Email,
		UserType:     acct.UserType,
		TokenVersion: acct.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(acct.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	switch acct.UserType {
	case models.UserTypeEmployer:
		claims.CompanyName = acct.CompanyName
	case models.UserTypeStudent:
		claims.StudentID = acct.StudentID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and time bounds of a token and returns its
// claims. Verification is stateless: no lookups, no side effects.
func (t *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
