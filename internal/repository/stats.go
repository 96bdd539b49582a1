package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	TotalJobs         int            `json:"total_jobs"`
	ActiveJobs        int            `json:"active_jobs"`
	TotalApplications int            `json:"total_applications"`
	ByStatus          map[string]int `json:"by_status"`
	EmailsSent        int            `json:"emails_sent"`
	EmailsFailed      int            `json:"emails_failed"`
}

// StatsRepository computes dashboard statistics.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// GetStats returns aggregated dashboard statistics
func (r *StatsRepository) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		ByStatus: make(map[string]int),
	}

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM jobs
	`).Scan(&stats.TotalJobs, &stats.ActiveJobs)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM job_applications GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.ByStatus[status] = count
		stats.TotalApplications += count
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE success), COUNT(*) FILTER (WHERE NOT success)
		FROM notification_log
	`).Scan(&stats.EmailsSent, &stats.EmailsFailed)
	if err != nil {
		return nil, fmt.Errorf("count notifications: %w", err)
	}

	return stats, nil
}
