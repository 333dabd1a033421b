package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/cmulenga/internhub-be/internal/models"
	"github.com/cmulenga/internhub-be/internal/storage"
)

const internshipColumns = `i.id, i.employer_id, i.title, i.description, COALESCE(i.requirements, ''),
	i.deadline, i.is_active, i.created_at,
	COALESCE(e.company_name, ''), COALESCE(e.company_website, '')`

// CreateInternship inserts a posting owned by an employer account.
func (s *Store) CreateInternship(ctx context.Context, in models.Internship) (models.Internship, error) {
	const query = `
	INSERT INTO internships (employer_id, title, description, requirements, deadline)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, is_active, created_at;`

	row := s.db.QueryRow(ctx, query,
		in.EmployerID, in.Title, in.Description, nullable(in.Requirements), in.Deadline)
	if err := row.Scan(&in.ID, &in.IsActive, &in.CreatedAt); err != nil {
		return models.Internship{}, oops.With("operation", "create internship").With("employer_id", in.EmployerID).Wrap(err)
	}
	return in, nil
}

// ListInternships returns active postings with employer company info, newest first.
func (s *Store) ListInternships(ctx context.Context) ([]models.Internship, error) {
	const query = `
	SELECT ` + internshipColumns + `
	FROM internships i
	JOIN accounts e ON i.employer_id = e.id
	WHERE i.is_active
	ORDER BY i.created_at DESC;`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, oops.With("operation", "list internships").Wrap(err)
	}
	defer rows.Close()
	return collectInternships(rows)
}

// GetInternship fetches a single posting by ID.
func (s *Store) GetInternship(ctx context.Context, id int64) (models.Internship, error) {
	const query = `
	SELECT ` + internshipColumns + `
	FROM internships i
	JOIN accounts e ON i.employer_id = e.id
	WHERE i.id = $1;`

	in, err := scanInternship(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Internship{}, storage.ErrNotFound
		}
		return models.Internship{}, oops.With("operation", "get internship").With("internship_id", id).Wrap(err)
	}
	return in, nil
}

// ListInternshipsByEmployer returns every posting by one employer, active or not.
func (s *Store) ListInternshipsByEmployer(ctx context.Context, employerID int64) ([]models.Internship, error) {
	const query = `
	SELECT ` + internshipColumns + `
	FROM internships i
	JOIN accounts e ON i.employer_id = e.id
	WHERE i.employer_id = $1
	ORDER BY i.created_at DESC;`

	rows, err := s.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, oops.With("operation", "list employer internships").With("employer_id", employerID).Wrap(err)
	}
	defer rows.Close()
	return collectInternships(rows)
}

func scanInternship(row pgx.Row) (models.Internship, error) {
	var in models.Internship
	err := row.Scan(
		&in.ID, &in.EmployerID, &in.Title, &in.Description, &in.Requirements,
		&in.Deadline, &in.IsActive, &in.CreatedAt,
		&in.CompanyName, &in.CompanyWebsite,
	)
	return in, err
}

func collectInternships(rows pgx.Rows) ([]models.Internship, error) {
	out := []models.Internship{}
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, oops.With("operation", "scan internship row").Wrap(err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate internships").Wrap(err)
	}
	return out, nil
}
