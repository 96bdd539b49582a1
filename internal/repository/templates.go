package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
)

// TemplatesRepository handles email template CRUD operations.
// Default-flag exclusivity (at most one default per outcome type) is
// enforced inside a transaction on every write that sets the flag.
type TemplatesRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTemplatesRepository creates a new templates repository
func NewTemplatesRepository(pool *pgxpool.Pool, log *logger.Logger) *TemplatesRepository {
	return &TemplatesRepository{
		pool: pool,
		log:  log,
	}
}

const templateColumns = `id, name, type, subject, html_content, is_default, created_at, updated_at`

func scanTemplate(row pgx.Row) (*models.EmailTemplate, error) {
	var t models.EmailTemplate
	err := row.Scan(
		&t.ID, &t.Name, &t.Type, &t.Subject, &t.HTMLContent,
		&t.IsDefault, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new template. If the template is flagged as default,
// existing defaults of the same type are cleared in the same transaction.
func (r *TemplatesRepository) Create(ctx context.Context, t *models.EmailTemplate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if t.IsDefault {
		_, err = tx.Exec(ctx, `
			UPDATE email_templates
			SET is_default = FALSE, updated_at = NOW()
			WHERE type = $1 AND is_default
		`, t.Type)
		if err != nil {
			return fmt.Errorf("clear existing defaults: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO email_templates (name, type, subject, html_content, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, t.Name, t.Type, t.Subject, t.HTMLContent, t.IsDefault,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	r.log.Info().
		Str("id", t.ID.String()).
		Str("type", string(t.Type)).
		Bool("is_default", t.IsDefault).
		Msg("created email template")

	return nil
}

// GetByID returns a single template by ID
func (r *TemplatesRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EmailTemplate, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		WHERE id = $1
	`, id))
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("get template by id: %w", err)
	}
	return t, nil
}

// GetByName returns a template by display name, or nil if absent
func (r *TemplatesRepository) GetByName(ctx context.Context, name string) (*models.EmailTemplate, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		WHERE name = $1
		LIMIT 1
	`, name))
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("get template by name: %w", err)
	}
	return t, nil
}

// GetDefault returns the default template for an outcome type, or nil
// when none is flagged.
func (r *TemplatesRepository) GetDefault(ctx context.Context, outcome models.OutcomeType) (*models.EmailTemplate, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		WHERE type = $1 AND is_default
	`, outcome))
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("get default template: %w", err)
	}
	return t, nil
}

// List returns all templates, newest first
func (r *TemplatesRepository) List(ctx context.Context) ([]*models.EmailTemplate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.EmailTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// Update updates a template. Setting the default flag clears other
// defaults of the same type in the same transaction.
func (r *TemplatesRepository) Update(ctx context.Context, t *models.EmailTemplate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if t.IsDefault {
		_, err = tx.Exec(ctx, `
			UPDATE email_templates
			SET is_default = FALSE, updated_at = NOW()
			WHERE type = $1 AND is_default AND id <> $2
		`, t.Type, t.ID)
		if err != nil {
			return fmt.Errorf("clear existing defaults: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		UPDATE email_templates
		SET name = $2, subject = $3, html_content = $4, is_default = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, t.ID, t.Name, t.Subject, t.HTMLContent, t.IsDefault,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return fmt.Errorf("template %s not found", t.ID)
		}
		return fmt.Errorf("update template: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// SetDefault atomically makes the given template the single default for
// its outcome type.
func (r *TemplatesRepository) SetDefault(ctx context.Context, id uuid.UUID, outcome models.OutcomeType) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE email_templates
		SET is_default = FALSE, updated_at = NOW()
		WHERE type = $1 AND is_default AND id <> $2
	`, outcome, id)
	if err != nil {
		return fmt.Errorf("clear existing defaults: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE email_templates
		SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1 AND type = $2
	`, id, outcome)
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %s with type %s not found", id, outcome)
	}

	return tx.Commit(ctx)
}

// Delete deletes a template
func (r *TemplatesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
