package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
)

// ApplicationsRepository handles job applications CRUD operations
type ApplicationsRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewApplicationsRepository creates a new applications repository
func NewApplicationsRepository(pool *pgxpool.Pool, log *logger.Logger) *ApplicationsRepository {
	return &ApplicationsRepository{
		pool: pool,
		log:  log,
	}
}

// Create creates a new job application record
func (r *ApplicationsRepository) Create(ctx context.Context, app *models.JobApplication) error {
	// Applications always enter the workflow as pending
	if app.Status == "" {
		app.Status = models.StatusPending
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO job_applications (
			job_id, full_name, email, phone, resume_url, cover_letter, linkedin_url, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, submitted_at
	`, app.JobID, app.FullName, app.Email, app.Phone,
		app.ResumeURL, app.CoverLetter, app.LinkedInURL, app.Status,
	).Scan(&app.ID, &app.SubmittedAt)

	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	r.log.Info().
		Str("id", app.ID.String()).
		Str("job_id", app.JobID.String()).
		Msg("created application")

	return nil
}

// GetByID returns a single application by ID
func (r *ApplicationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	var app models.JobApplication
	// job_id goes NULL once the parent job is deleted
	err := r.pool.QueryRow(ctx, `
		SELECT id, COALESCE(job_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       full_name, email, phone, resume_url, cover_letter,
		       linkedin_url, status, submitted_at
		FROM job_applications
		WHERE id = $1
	`, id).Scan(
		&app.ID, &app.JobID, &app.FullName, &app.Email, &app.Phone,
		&app.ResumeURL, &app.CoverLetter, &app.LinkedInURL, &app.Status, &app.SubmittedAt,
	)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("get application by id: %w", err)
	}
	return &app, nil
}

// GetWithJob returns an application joined with its parent job's title.
// JobTitle is nil when the job has been deleted.
func (r *ApplicationsRepository) GetWithJob(ctx context.Context, id uuid.UUID) (*models.ApplicationWithJob, error) {
	var app models.ApplicationWithJob
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, COALESCE(a.job_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       a.full_name, a.email, a.phone, a.resume_url,
		       a.cover_letter, a.linkedin_url, a.status, a.submitted_at, j.title
		FROM job_applications a
		LEFT JOIN jobs j ON j.id = a.job_id
		WHERE a.id = $1
	`, id).Scan(
		&app.ID, &app.JobID, &app.FullName, &app.Email, &app.Phone, &app.ResumeURL,
		&app.CoverLetter, &app.LinkedInURL, &app.Status, &app.SubmittedAt, &app.JobTitle,
	)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("get application with job: %w", err)
	}
	return &app, nil
}

// ApplicationFilter narrows List results.
type ApplicationFilter struct {
	JobID  *uuid.UUID
	Status models.ApplicationStatus
}

// List returns applications matching the filter, newest first
func (r *ApplicationsRepository) List(ctx context.Context, filter ApplicationFilter) ([]*models.JobApplication, error) {
	query := `
		SELECT id, COALESCE(job_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       full_name, email, phone, resume_url, cover_letter,
		       linkedin_url, status, submitted_at
		FROM job_applications
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.JobID != nil {
		query += fmt.Sprintf(" AND job_id = $%d", argPos)
		args = append(args, *filter.JobID)
		argPos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}

	query += " ORDER BY submitted_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.JobApplication
	for rows.Next() {
		var app models.JobApplication
		err := rows.Scan(
			&app.ID, &app.JobID, &app.FullName, &app.Email, &app.Phone,
			&app.ResumeURL, &app.CoverLetter, &app.LinkedInURL, &app.Status, &app.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, &app)
	}

	return apps, nil
}

// UpdateStatus updates the review status of an application.
// Any transition is permitted, including setting the current value again.
func (r *ApplicationsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE job_applications
		SET status = $2
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	r.log.Info().
		Str("id", id.String()).
		Str("status", string(status)).
		Msg("updated application status")

	return nil
}
