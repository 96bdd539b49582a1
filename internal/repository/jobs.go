package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goia/careers-os/internal/models"
)

// JobsRepository handles jobs table operations
type JobsRepository struct {
	pool *pgxpool.Pool
}

// NewJobsRepository creates a new jobs repository
func NewJobsRepository(pool *pgxpool.Pool) *JobsRepository {
	return &JobsRepository{pool: pool}
}

// Create creates a new job posting
func (r *JobsRepository) Create(ctx context.Context, j *models.Job) error {
	if j.Type == "" {
		j.Type = "full-time"
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (title, location, type, description, requirements, salary_range, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, j.Title, j.Location, j.Type, j.Description, j.Requirements, j.SalaryRange, j.IsActive,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetByID returns a single job by ID
func (r *JobsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var j models.Job
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, location, type, description, requirements, salary_range,
		       is_active, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`, id).Scan(
		&j.ID, &j.Title, &j.Location, &j.Type, &j.Description, &j.Requirements,
		&j.SalaryRange, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("get job by id: %w", err)
	}
	return &j, nil
}

// List returns job postings, newest first.
// When activeOnly is true, inactive postings are excluded (public careers page).
func (r *JobsRepository) List(ctx context.Context, activeOnly bool) ([]*models.Job, error) {
	query := `
		SELECT id, title, location, type, description, requirements, salary_range,
		       is_active, created_at, updated_at
		FROM jobs
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		var j models.Job
		err := rows.Scan(
			&j.ID, &j.Title, &j.Location, &j.Type, &j.Description, &j.Requirements,
			&j.SalaryRange, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, &j)
	}

	return jobs, nil
}

// Update updates an existing job posting
func (r *JobsRepository) Update(ctx context.Context, j *models.Job) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET title = $2, location = $3, type = $4, description = $5,
		    requirements = $6, salary_range = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
	`, j.ID, j.Title, j.Location, j.Type, j.Description, j.Requirements, j.SalaryRange, j.IsActive)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete deletes a job posting. Applications keep their rows; the
// foreign key nulls out job_id so sends fall back to "the position".
func (r *JobsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
