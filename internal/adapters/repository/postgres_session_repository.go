package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

// sessionSelect joins sessions with their client so one query carries
// everything the feed normalizer needs.
const sessionSelect = `
	SELECT s.id, s.practitioner_id, s.starts_at,
	       c.initials AS client_initials, s.client_id, s.session_number,
	       c.presenting_issues, c.mhcp_remaining, c.mhcp_total,
	       c.relationship_months, s.status, s.location_type
	FROM sessions s
	JOIN clients c ON c.id = s.client_id`

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, row *domain.SessionRow) error {
	query := `
		INSERT INTO sessions (
			id, practitioner_id, client_id,
			starts_at, session_number, status, location_type
		) VALUES (
			:id, :practitioner_id, :client_id,
			:starts_at, :session_number, :status, :location_type
		)`

	_, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errors.New("referenced client or practitioner does not exist")
		}
		return fmt.Errorf("repository: insert session failed: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*domain.SessionRow, error) {
	var row domain.SessionRow

	err := r.db.GetContext(ctx, &row, sessionSelect+` WHERE s.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("repository: get session failed: %w", err)
	}

	return &row, nil
}

func (r *PostgresSessionRepository) ListByPractitionerAndDay(ctx context.Context, practitionerID string, day time.Time) ([]domain.SessionRow, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := sessionSelect + `
		WHERE s.practitioner_id = $1
		  AND s.starts_at >= $2 AND s.starts_at < $3
		ORDER BY s.starts_at ASC`

	var rows []domain.SessionRow
	if err := r.db.SelectContext(ctx, &rows, query, practitionerID, dayStart, dayEnd); err != nil {
		return nil, fmt.Errorf("repository: list sessions failed: %w", err)
	}

	return rows, nil
}

func (r *PostgresSessionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("repository: update session status failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}
