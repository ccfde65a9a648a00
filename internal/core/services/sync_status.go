package services

import (
	"time"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

// NormalizeSyncStatus maps the sync bookkeeping row into the canonical
// status. A practitioner with no row has simply never synced, which is
// a healthy state, not an error.
//
// The row keeps only the most recent error message, so at most one
// synthetic SyncError is produced; the full error history is not
// modeled. Known product limitation.
func NormalizeSyncStatus(row *domain.SyncStatusRow) domain.SyncStatus {
	if row == nil {
		return domain.SyncStatus{
			IsConnected: true,
			Errors:      []domain.SyncError{},
		}
	}

	isConnected := true
	if row.IsConnected != nil {
		isConnected = *row.IsConnected
	}

	errs := []domain.SyncError{}
	if row.LastErrorMessage != nil && *row.LastErrorMessage != "" {
		at := time.Time{}
		if row.LastAttemptedSync != nil {
			at = *row.LastAttemptedSync
		}
		errs = append(errs, domain.SyncError{
			Timestamp:  at,
			Operation:  "sync",
			Entity:     "all",
			Message:    *row.LastErrorMessage,
			IsResolved: false,
		})
	}

	pending := 0
	if row.PendingChanges != nil {
		pending = *row.PendingChanges
	}

	return domain.SyncStatus{
		IsConnected:        isConnected,
		LastSuccessfulSync: row.LastSuccessfulSync,
		LastAttemptedSync:  row.LastAttemptedSync,
		Errors:             errs,
		PendingChanges:     pending,
	}
}
