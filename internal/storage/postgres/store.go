package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"

	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// db is the subset of pgxpool.Pool the store needs. Tests inject a pgxmock
// pool through the same interface.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Store provides Postgres-backed persistence for accounts, internships, and
// applications.
type Store struct {
	db db
}

// NewStore connects a pgx pool and bootstraps the schema.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{db: pool}
	if err := s.bootstrap(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Ping reports database reachability for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) bootstrap(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			user_type TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			token_version INTEGER NOT NULL DEFAULT 1,
			name TEXT,
			major TEXT,
			student_id TEXT,
			phone TEXT,
			skills TEXT,
			company_name TEXT,
			industry TEXT,
			company_website TEXT,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			username TEXT,
			admin_role TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_unique_idx ON accounts (lower(email));`,
		`CREATE TABLE IF NOT EXISTS internships (
			id BIGSERIAL PRIMARY KEY,
			employer_id BIGINT NOT NULL REFERENCES accounts(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			requirements TEXT,
			deadline DATE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS applications (
			id BIGSERIAL PRIMARY KEY,
			student_id BIGINT NOT NULL REFERENCES accounts(id),
			internship_id BIGINT NOT NULL REFERENCES internships(id),
			cover_letter TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, internship_id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return oops.With("operation", "bootstrap schema").Wrap(err)
		}
	}
	return nil
}

const accountColumns = `id, user_type, email, password_hash, is_active, token_version,
	COALESCE(name, ''), COALESCE(major, ''), COALESCE(student_id, ''), COALESCE(phone, ''), COALESCE(skills, ''),
	COALESCE(company_name, ''), COALESCE(industry, ''), COALESCE(company_website, ''), is_verified,
	COALESCE(username, ''), COALESCE(admin_role, ''), created_at`

// CreateAccount inserts a new account row. A duplicate email (case-insensitive)
// maps to storage.ErrAlreadyExists.
func (s *Store) CreateAccount(ctx context.Context, acct models.Account) (models.Account, error) {
	const query = `
	INSERT INTO accounts (
		user_type, email, password_hash, is_active,
		name, major, student_id, phone, skills,
		company_name, industry, company_website, is_verified,
		username, admin_role
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING ` + accountColumns + `;`

	row := s.db.QueryRow(ctx, query,
		acct.UserType, acct.Email, acct.PasswordHash, acct.IsActive,
		nullable(acct.Name), nullable(acct.Major), nullable(acct.StudentID),
		nullable(acct.Phone), nullable(acct.Skills),
		nullable(acct.CompanyName), nullable(acct.Industry), nullable(acct.CompanyWebsite),
		acct.IsVerified,
		nullable(acct.Username), nullable(acct.AdminRole),
	)
	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, oops.With("operation", "create account").With("email", acct.Email).Wrap(err)
	}
	return created, nil
}

// FindAccountByEmail fetches an account by its email, ignoring case.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1);`
	return scanAccount(s.db.QueryRow(ctx, query, email))
}

// FindAccountByID fetches an account by primary key.
func (s *Store) FindAccountByID(ctx context.Context, id int64) (models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1;`
	return scanAccount(s.db.QueryRow(ctx, query, id))
}

// Columns each user type may change through profile updates. Account status
// and verification flags are deliberately absent.
var mutableColumns = map[models.UserType][]string{
	models.UserTypeStudent:  {"name", "major", "phone", "skills"},
	models.UserTypeEmployer: {"company_name", "industry", "company_website"},
	models.UserTypeAdmin:    {"username"},
}

// UpdateAccount applies allow-listed fields for the account's type. Fields
// outside the allow-list are ignored; no recognized field means zero rows.
func (s *Store) UpdateAccount(ctx context.Context, id int64, userType models.UserType, fields map[string]any) (int64, error) {
	var (
		set  []string
		args []any
	)
	for _, col := range mutableColumns[userType] {
		if value, ok := fields[col]; ok {
			args = append(args, value)
			set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	if len(set) == 0 {
		return 0, nil
	}

	args = append(args, id, userType)
	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d AND user_type = $%d;",
		strings.Join(set, ", "), len(args)-1, len(args))
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, oops.With("operation", "update account").With("account_id", id).Wrap(err)
	}
	return tag.RowsAffected(), nil
}

// UpdatePassword overwrites the stored hash and increments the token version,
// invalidating tokens issued before the change.
func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error) {
	const query = `UPDATE accounts SET password_hash = $1, token_version = token_version + 1 WHERE id = $2;`
	tag, err := s.db.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return 0, oops.With("operation", "update password").With("account_id", id).Wrap(err)
	}
	return tag.RowsAffected(), nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID, &a.UserType, &a.Email, &a.PasswordHash, &a.IsActive, &a.TokenVersion,
		&a.Name, &a.Major, &a.StudentID, &a.Phone, &a.Skills,
		&a.CompanyName, &a.Industry, &a.CompanyWebsite, &a.IsVerified,
		&a.Username, &a.AdminRole, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, err
	}
	return a, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
