package storage

import (
	"context"
	"errors"

	"github.com/cmulenga/internhub-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// AccountStore captures persistence for the single accounts table. Email
// lookups are case-insensitive; callers still pass normalized addresses.
type AccountStore interface {
	CreateAccount(ctx context.Context, acct models.Account) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	FindAccountByID(ctx context.Context, id int64) (models.Account, error)
	// UpdateAccount applies the allow-listed subset of fields for the
	// account's type and returns the number of rows affected.
	UpdateAccount(ctx context.Context, id int64, userType models.UserType, fields map[string]any) (int64, error)
	// UpdatePassword overwrites the hash and bumps the token version so
	// previously issued tokens stop working.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error)
}

// InternshipStore captures persistence for internship postings.
type InternshipStore interface {
	CreateInternship(ctx context.Context, in models.Internship) (models.Internship, error)
	ListInternships(ctx context.Context) ([]models.Internship, error)
	GetInternship(ctx context.Context, id int64) (models.Internship, error)
	ListInternshipsByEmployer(ctx context.Context, employerID int64) ([]models.Internship, error)
}

// ApplicationStore captures persistence for student applications.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app models.Application) (models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	GetApplication(ctx context.Context, id int64) (models.Application, error)
	ListApplicationsByStudent(ctx context.Context, studentID int64) ([]models.Application, error)
	ListApplicationsByEmployer(ctx context.Context, employerID int64) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) (int64, error)
}

// Store is the full persistence surface the server wires up.
type Store interface {
	AccountStore
	InternshipStore
	ApplicationStore
	Ping(ctx context.Context) error
}
