package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

// PostgresStatsRepository reads the three practice-metrics views. Each
// view holds at most one row per practitioner and period; a missing row
// is a normal state (new or idle practice) and maps to (nil, nil).
type PostgresStatsRepository struct {
	db *sqlx.DB
}

func NewPostgresStatsRepository(db *sqlx.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) GetWeekly(ctx context.Context, practitionerID string, asOf time.Time) (*domain.WeeklyStatsRow, error) {
	query := `
		SELECT week_start, week_end, completed_sessions, total_sessions,
		       scheduled_sessions, max_sessions, no_shows, cancellations,
		       current_revenue, revenue_target
		FROM practice_weekly_stats
		WHERE practitioner_id = $1
		  AND week_start <= $2::date AND week_end >= $2::date`

	var row domain.WeeklyStatsRow
	if err := r.db.GetContext(ctx, &row, query, practitionerID, asOf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: weekly stats query failed: %w", err)
	}

	return &row, nil
}

func (r *PostgresStatsRepository) GetMonthly(ctx context.Context, practitionerID string, asOf time.Time) (*domain.MonthlyStatsRow, error) {
	query := `
		SELECT month_label, current_revenue, revenue_target, session_count,
		       avg_session_value, medicare_revenue, private_revenue,
		       dva_revenue, workcover_revenue, ndis_revenue
		FROM practice_monthly_stats
		WHERE practitioner_id = $1
		  AND month_start = date_trunc('month', $2::date)`

	var row domain.MonthlyStatsRow
	if err := r.db.GetContext(ctx, &row, query, practitionerID, asOf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: monthly stats query failed: %w", err)
	}

	return &row, nil
}

func (r *PostgresStatsRepository) GetUpcoming(ctx context.Context, practitionerID string, asOf time.Time) (*domain.UpcomingStatsRow, error) {
	query := `
		SELECT sessions_tomorrow, remaining_this_week, sessions_next_week,
		       plans_ending_soon, needing_follow_up, unbooked_regulars
		FROM practice_upcoming_stats
		WHERE practitioner_id = $1 AND as_of_date = $2::date`

	var row domain.UpcomingStatsRow
	if err := r.db.GetContext(ctx, &row, query, practitionerID, asOf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: upcoming stats query failed: %w", err)
	}

	return &row, nil
}
