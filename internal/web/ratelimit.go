package web

import (
	"net/http"

	"golang.org/x/time/rate"
)

// SubmissionLimiter throttles the public application form. One shared
// limiter is enough: the form is low-traffic and the goal is to absorb
// bursts from scripts, not to do per-client accounting.
type SubmissionLimiter struct {
	limiter *rate.Limiter
}

// NewSubmissionLimiter creates a limiter allowing rps submissions per
// second with the given burst.
func NewSubmissionLimiter(rps float64, burst int) *SubmissionLimiter {
	return &SubmissionLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Middleware rejects requests over the limit with 429.
func (l *SubmissionLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many requests, try again shortly"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
