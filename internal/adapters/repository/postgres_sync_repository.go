package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

type PostgresSyncRepository struct {
	db *sqlx.DB
}

func NewPostgresSyncRepository(db *sqlx.DB) *PostgresSyncRepository {
	return &PostgresSyncRepository{db: db}
}

func (r *PostgresSyncRepository) GetByPractitionerID(ctx context.Context, practitionerID string) (*domain.SyncStatusRow, error) {
	query := `
		SELECT practitioner_id, is_connected, last_successful_sync,
		       last_attempted_sync, last_error_message, pending_changes
		FROM sync_status
		WHERE practitioner_id = $1`

	var row domain.SyncStatusRow
	if err := r.db.GetContext(ctx, &row, query, practitionerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Never synced. Healthy, not an error.
			return nil, nil
		}
		return nil, fmt.Errorf("repository: sync status query failed: %w", err)
	}

	return &row, nil
}

func (r *PostgresSyncRepository) RecordOutcome(ctx context.Context, outcome domain.SyncOutcome) error {
	if outcome.Err == "" {
		query := `
			INSERT INTO sync_status (practitioner_id, is_connected, last_successful_sync, last_attempted_sync, last_error_message, pending_changes)
			VALUES ($1, TRUE, $2, $2, NULL, 0)
			ON CONFLICT (practitioner_id) DO UPDATE SET
				is_connected = TRUE,
				last_successful_sync = $2,
				last_attempted_sync = $2,
				last_error_message = NULL,
				pending_changes = 0`

		if _, err := r.db.ExecContext(ctx, query, outcome.PractitionerID, outcome.At); err != nil {
			return fmt.Errorf("repository: record sync success failed: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO sync_status (practitioner_id, is_connected, last_attempted_sync, last_error_message, pending_changes)
		VALUES ($1, FALSE, $2, $3, 0)
		ON CONFLICT (practitioner_id) DO UPDATE SET
			is_connected = FALSE,
			last_attempted_sync = $2,
			last_error_message = $3`

	if _, err := r.db.ExecContext(ctx, query, outcome.PractitionerID, outcome.At, outcome.Err); err != nil {
		return fmt.Errorf("repository: record sync failure failed: %w", err)
	}
	return nil
}

func (r *PostgresSyncRepository) AddPendingChange(ctx context.Context, practitionerID string) error {
	query := `
		INSERT INTO sync_status (practitioner_id, pending_changes)
		VALUES ($1, 1)
		ON CONFLICT (practitioner_id) DO UPDATE SET
			pending_changes = sync_status.pending_changes + 1`

	if _, err := r.db.ExecContext(ctx, query, practitionerID); err != nil {
		return fmt.Errorf("repository: add pending change failed: %w", err)
	}
	return nil
}
