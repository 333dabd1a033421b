// Package storetest provides an in-memory storage.Store for tests.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store mimics the Postgres store's semantics: case-insensitive unique
// emails, per-type mutable columns, unique student+internship applications,
// token version bumps on password change.
type Store struct {
	mu           sync.Mutex
	accounts     map[int64]models.Account
	internships  map[int64]models.Internship
	applications map[int64]models.Application
	nextID       int64

	// PingErr makes health checks fail when set.
	PingErr error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		accounts:     map[int64]models.Account{},
		internships:  map[int64]models.Internship{},
		applications: map[int64]models.Application{},
	}
}

func (s *Store) Ping(ctx context.Context) error { return s.PingErr }

func (s *Store) CreateAccount(ctx context.Context, acct models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, acct.Email) {
			return models.Account{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	acct.ID = s.nextID
	acct.TokenVersion = 1
	acct.CreatedAt = time.Now()
	s.accounts[acct.ID] = acct
	return acct, nil
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if strings.EqualFold(acct.Email, email) {
			return acct, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}

func (s *Store) FindAccountByID(ctx context.Context, id int64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return acct, nil
}

func (s *Store) UpdateAccount(ctx context.Context, id int64, userType models.UserType, fields map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok || acct.UserType != userType {
		return 0, nil
	}
	applied := false
	set := func(col string, dst *string) {
		if v, ok := fields[col].(string); ok {
			*dst = v
			applied = true
		}
	}
	switch userType {
	case models.UserTypeStudent:
		set("name", &acct.Name)
		set("major", &acct.Major)
		set("phone", &acct.Phone)
		set("skills", &acct.Skills)
	case models.UserTypeEmployer:
		set("company_name", &acct.CompanyName)
		set("industry", &acct.Industry)
		set("company_website", &acct.CompanyWebsite)
	case models.UserTypeAdmin:
		set("username", &acct.Username)
	}
	if !applied {
		return 0, nil
	}
	s.accounts[id] = acct
	return 1, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return 0, nil
	}
	acct.PasswordHash = passwordHash
	acct.TokenVersion++
	s.accounts[id] = acct
	return 1, nil
}

func (s *Store) CreateInternship(ctx context.Context, in models.Internship) (models.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	in.ID = s.nextID
	in.IsActive = true
	in.CreatedAt = time.Now()
	s.internships[in.ID] = in
	return in, nil
}

func (s *Store) ListInternships(ctx context.Context) ([]models.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Internship{}
	for _, in := range s.internships {
		if in.IsActive {
			out = append(out, s.joinInternship(in))
		}
	}
	sortByIDDesc(out, func(i models.Internship) int64 { return i.ID })
	return out, nil
}

func (s *Store) GetInternship(ctx context.Context, id int64) (models.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.internships[id]
	if !ok {
		return models.Internship{}, storage.ErrNotFound
	}
	return s.joinInternship(in), nil
}

func (s *Store) ListInternshipsByEmployer(ctx context.Context, employerID int64) ([]models.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Internship{}
	for _, in := range s.internships {
		if in.EmployerID == employerID {
			out = append(out, s.joinInternship(in))
		}
	}
	sortByIDDesc(out, func(i models.Internship) int64 { return i.ID })
	return out, nil
}

func (s *Store) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.applications {
		if existing.StudentID == app.StudentID && existing.InternshipID == app.InternshipID {
			return models.Application{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	app.ID = s.nextID
	app.Status = models.ApplicationStatusPending
	app.CreatedAt = time.Now()
	s.applications[app.ID] = app
	return app, nil
}

func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Application{}
	for _, app := range s.applications {
		out = append(out, s.joinApplication(app))
	}
	sortByIDDesc(out, func(a models.Application) int64 { return a.ID })
	return out, nil
}

func (s *Store) GetApplication(ctx context.Context, id int64) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[id]
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	return s.joinApplication(app), nil
}

func (s *Store) ListApplicationsByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Application{}
	for _, app := range s.applications {
		if app.StudentID == studentID {
			out = append(out, s.joinApplication(app))
		}
	}
	sortByIDDesc(out, func(a models.Application) int64 { return a.ID })
	return out, nil
}

func (s *Store) ListApplicationsByEmployer(ctx context.Context, employerID int64) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Application{}
	for _, app := range s.applications {
		if in, ok := s.internships[app.InternshipID]; ok && in.EmployerID == employerID {
			out = append(out, s.joinApplication(app))
		}
	}
	sortByIDDesc(out, func(a models.Application) int64 { return a.ID })
	return out, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[id]
	if !ok {
		return 0, nil
	}
	app.Status = status
	s.applications[id] = app
	return 1, nil
}

func (s *Store) joinInternship(in models.Internship) models.Internship {
	if employer, ok := s.accounts[in.EmployerID]; ok {
		in.CompanyName = employer.CompanyName
		in.CompanyWebsite = employer.CompanyWebsite
	}
	return in
}

func (s *Store) joinApplication(app models.Application) models.Application {
	if student, ok := s.accounts[app.StudentID]; ok {
		app.StudentName = student.Name
		app.StudentEmail = student.Email
		app.StudentMajor = student.Major
	}
	if in, ok := s.internships[app.InternshipID]; ok {
		app.InternshipTitle = in.Title
		if employer, ok := s.accounts[in.EmployerID]; ok {
			app.CompanyName = employer.CompanyName
		}
	}
	return app
}

func sortByIDDesc[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) > id(items[j]) })
}
