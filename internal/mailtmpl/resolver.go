package mailtmpl

import (
	"context"

	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
)

// TemplateStore provides the stored default template per outcome type.
type TemplateStore interface {
	GetDefault(ctx context.Context, outcome models.OutcomeType) (*models.EmailTemplate, error)
}

// Resolver selects the template to use for an outcome email.
// Resolution is best-effort: it must never block a send, so store errors
// are swallowed and the built-in template is used instead.
type Resolver struct {
	store TemplateStore
	log   *logger.Logger
}

// NewResolver creates a new Resolver. store may be nil, in which case
// only built-in templates are served.
func NewResolver(store TemplateStore) *Resolver {
	return &Resolver{
		store: store,
		log:   logger.Get(),
	}
}

// ResolveDefault returns the stored default template for the outcome type,
// or the built-in fallback if none exists or the store is unreachable.
// Templates are re-fetched on every call so operator edits take effect
// immediately for subsequent sends.
func (r *Resolver) ResolveDefault(ctx context.Context, outcome models.OutcomeType) ResolvedTemplate {
	if r.store == nil {
		return Builtin(outcome)
	}

	tmpl, err := r.store.GetDefault(ctx, outcome)
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("outcome", string(outcome)).
			Msg("template lookup failed, using built-in")
		return Builtin(outcome)
	}
	if tmpl == nil {
		return Builtin(outcome)
	}

	return ResolvedTemplate{
		Subject:  tmpl.Subject,
		HTMLBody: tmpl.HTMLContent,
	}
}
