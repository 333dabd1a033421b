package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/storage"
)

const applicationColumns = `a.id, a.student_id, a.internship_id, a.cover_letter, a.status, a.created_at,
	COALESCE(s.name, ''), s.email, COALESCE(s.major, ''),
	i.title, COALESCE(e.company_name, '')`

const applicationJoins = `
	FROM applications a
	JOIN accounts s ON a.student_id = s.id
	JOIN internships i ON a.internship_id = i.id
	JOIN accounts e ON i.employer_id = e.id`

// CreateApplication inserts a student application. A second application by
// the same student for the same internship maps to storage.ErrAlreadyExists.
func (s *Store) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	const query = `
	INSERT INTO applications (student_id, internship_id, cover_letter)
	VALUES ($1, $2, $3)
	RETURNING id, status, created_at;`

	row := s.db.QueryRow(ctx, query, app.StudentID, app.InternshipID, app.CoverLetter)
	if err := row.Scan(&app.ID, &app.Status, &app.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Application{}, storage.ErrAlreadyExists
		}
		return models.Application{}, oops.With("operation", "create application").
			With("student_id", app.StudentID).With("internship_id", app.InternshipID).Wrap(err)
	}
	return app, nil
}

// ListApplications returns all applications with student and internship info,
// newest first. Used by the admin dashboard.
func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + applicationJoins + ` ORDER BY a.created_at DESC;`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, oops.With("operation", "list applications").Wrap(err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// GetApplication fetches one application by ID.
func (s *Store) GetApplication(ctx context.Context, id int64) (models.Application, error) {
	query := `SELECT ` + applicationColumns + applicationJoins + ` WHERE a.id = $1;`
	app, err := scanApplication(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Application{}, storage.ErrNotFound
		}
		return models.Application{}, oops.With("operation", "get application").With("application_id", id).Wrap(err)
	}
	return app, nil
}

// ListApplicationsByStudent returns a student's applications, newest first.
func (s *Store) ListApplicationsByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + applicationJoins + ` WHERE a.student_id = $1 ORDER BY a.created_at DESC;`
	rows, err := s.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, oops.With("operation", "list student applications").With("student_id", studentID).Wrap(err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// ListApplicationsByEmployer returns applications to any of the employer's
// postings, newest first.
func (s *Store) ListApplicationsByEmployer(ctx context.Context, employerID int64) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + applicationJoins + ` WHERE i.employer_id = $1 ORDER BY a.created_at DESC;`
	rows, err := s.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, oops.With("operation", "list employer applications").With("employer_id", employerID).Wrap(err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

// UpdateApplicationStatus sets the status and returns rows affected. Status
// validation happens at the handler; the store trusts its callers.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id int64, status string) (int64, error) {
	const query = `UPDATE applications SET status = $1 WHERE id = $2;`
	tag, err := s.db.Exec(ctx, query, status, id)
	if err != nil {
		return 0, oops.With("operation", "update application status").With("application_id", id).Wrap(err)
	}
	return tag.RowsAffected(), nil
}

func scanApplication(row pgx.Row) (models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID, &a.StudentID, &a.InternshipID, &a.CoverLetter, &a.Status, &a.CreatedAt,
		&a.StudentName, &a.StudentEmail, &a.StudentMajor,
		&a.InternshipTitle, &a.CompanyName,
	)
	return a, err
}

func collectApplications(rows pgx.Rows) ([]models.Application, error) {
	out := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, oops.With("operation", "scan application row").Wrap(err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate applications").Wrap(err)
	}
	return out, nil
}
