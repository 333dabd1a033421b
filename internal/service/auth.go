package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/models/dto"
	"github.com/cmulenga/internhub-be/internal/storage"
)

// AuthService orchestrates the role resolver, account store, and token
// manager behind the /api/auth endpoints.
type AuthService struct {
	store      storage.AccountStore
	tokens     *auth.TokenManager
	roles      *auth.RoleResolver
	adminKeys  []string
	bcryptCost int
}

// NewAuthService wires the auth orchestration. adminKeys is the allow-list of
// department registration keys accepted for admin signups.
func NewAuthService(store storage.AccountStore, tokens *auth.TokenManager, roles *auth.RoleResolver, adminKeys []string, bcryptCost int) *AuthService {
	return &AuthService{
		store:      store,
		tokens:     tokens,
		roles:      roles,
		adminKeys:  adminKeys,
		bcryptCost: bcryptCost,
	}
}

// Login authenticates an email/password pair. The effective user type comes
// from the stored account, not the resolver's guess, so accounts registered
// before current domain rules still log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return dto.LoginResponse{}, validationErrorf("email and password are required")
	}

	acct, err := s.store.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}
	if !acct.IsActive {
		return dto.LoginResponse{}, ErrAccountDeactivated
	}

	token, err := s.tokens.Generate(acct)
	if err != nil {
		return dto.LoginResponse{}, oops.With("account_id", acct.ID).Wrap(err)
	}
	return dto.LoginResponse{
		Token:    token,
		User:     acct.Safe(),
		UserType: acct.UserType,
	}, nil
}

// Register resolves the user type from the email, validates the role-specific
// fields, and creates the account. No token is issued; the client logs in
// separately.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return dto.RegisterResponse{}, validationErrorf("email is required")
	}

	userType := s.roles.Resolve(email)
	if missing := missingFields(req, userType); len(missing) > 0 {
		return dto.RegisterResponse{}, missingFieldsError(userType, missing)
	}
	if userType == models.UserTypeAdmin && !s.validAdminKey(req.DepartmentKey) {
		return dto.RegisterResponse{}, validationErrorf("invalid department registration key")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return dto.RegisterResponse{}, oops.With("email", email).Wrap(err)
	}

	acct := models.Account{
		UserType:     userType,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if req.IsActive != nil {
		acct.IsActive = *req.IsActive
	}
	switch userType {
	case models.UserTypeStudent:
		acct.Name = strings.TrimSpace(req.Name)
		acct.Major = strings.TrimSpace(req.Major)
		acct.StudentID = generateStudentID(time.Now())
	case models.UserTypeEmployer:
		acct.CompanyName = strings.TrimSpace(req.CompanyName)
		acct.Industry = strings.TrimSpace(req.Industry)
		acct.CompanyWebsite = strings.TrimSpace(req.CompanyWebsite)
	case models.UserTypeAdmin:
		acct.Username = strings.TrimSpace(req.Username)
		acct.AdminRole = models.AdminRoleModerator
		if localPart(email) != "" && strings.Contains(localPart(email), "super.") {
			acct.AdminRole = models.AdminRoleSuperAdmin
		}
	}

	created, err := s.store.CreateAccount(ctx, acct)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			dup := &DuplicateAccountError{}
			if existing, lookupErr := s.store.FindAccountByEmail(ctx, email); lookupErr == nil {
				dup.ExistingType = existing.UserType
			}
			return dto.RegisterResponse{}, dup
		}
		return dto.RegisterResponse{}, err
	}

	return dto.RegisterResponse{ID: created.ID, UserType: created.UserType}, nil
}

// GetProfile returns the safe projection for the token's account.
func (s *AuthService) GetProfile(ctx context.Context, claims *auth.Claims) (models.SafeAccount, error) {
	acct, err := s.loadAccount(ctx, claims)
	if err != nil {
		return models.SafeAccount{}, err
	}
	return acct.Safe(), nil
}

// UpdateProfile applies the allow-listed mutable fields for the account's
// type and returns the field names it was asked to update. Password changes
// must go through ChangePassword.
func (s *AuthService) UpdateProfile(ctx context.Context, claims *auth.Claims, fields map[string]any) ([]string, error) {
	if _, ok := fields["password"]; ok {
		return nil, validationErrorf("use the change password endpoint for password updates")
	}
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		clean[k] = v
	}

	acct, err := s.loadAccount(ctx, claims)
	if err != nil {
		return nil, err
	}

	affected, err := s.store.UpdateAccount(ctx, acct.ID, acct.UserType, clean)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	updated := make([]string, 0, len(clean))
	for k := range clean {
		updated = append(updated, k)
	}
	sort.Strings(updated)
	return updated, nil
}

// ChangePassword re-verifies the current password, then stores a fresh hash.
// The store bumps the token version, so tokens issued before the change stop
// working for account operations.
func (s *AuthService) ChangePassword(ctx context.Context, claims *auth.Claims, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return validationErrorf("current and new password are required")
	}

	acct, err := s.loadAccount(ctx, claims)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return oops.With("account_id", acct.ID).Wrap(err)
	}
	affected, err := s.store.UpdatePassword(ctx, acct.ID, string(hash))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// loadAccount fetches the token's account and rejects tokens whose version is
// stale, which happens after a password change.
func (s *AuthService) loadAccount(ctx context.Context, claims *auth.Claims) (models.Account, error) {
	acct, err := s.store.FindAccountByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, err
	}
	if claims.TokenVersion != acct.TokenVersion {
		return models.Account{}, ErrStaleToken
	}
	return acct, nil
}

func (s *AuthService) validAdminKey(key string) bool {
	for _, k := range s.adminKeys {
		if key == k {
			return true
		}
	}
	return false
}

// NormalizeEmail lower-cases and trims an address. Every comparison and every
// stored email goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	return email[:at]
}

func missingFields(req dto.RegisterRequest, userType models.UserType) []string {
	required := map[string]string{}
	switch userType {
	case models.UserTypeStudent:
		required = map[string]string{
			"name": req.Name, "email": req.Email, "password": req.Password, "major": req.Major,
		}
	case models.UserTypeEmployer:
		required = map[string]string{
			"company_name": req.CompanyName, "email": req.Email, "password": req.Password, "industry": req.Industry,
		}
	case models.UserTypeAdmin:
		required = map[string]string{
			"username": req.Username, "email": req.Email, "password": req.Password, "department_key": req.DepartmentKey,
		}
	}
	var missing []string
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

const studentIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateStudentID builds STU + 2-digit year + 6 random base36 chars.
// Uniqueness is not enforced; collisions are tolerated like the rest of the
// student_id column.
func generateStudentID(now time.Time) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = studentIDAlphabet[rand.IntN(len(studentIDAlphabet))]
	}
	return "STU" + now.Format("06") + string(b)
}
