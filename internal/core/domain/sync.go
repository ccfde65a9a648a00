package domain

import "time"

// SyncStatusRow is the raw bookkeeping row for the upstream-sync
// process, one per practitioner. A practitioner that has never synced
// has no row at all.
type SyncStatusRow struct {
	PractitionerID     string     `db:"practitioner_id"`
	IsConnected        *bool      `db:"is_connected"`
	LastSuccessfulSync *time.Time `db:"last_successful_sync"`
	LastAttemptedSync  *time.Time `db:"last_attempted_sync"`
	LastErrorMessage   *string    `db:"last_error_message"`
	PendingChanges     *int       `db:"pending_changes"`
}

type SyncError struct {
	Timestamp  time.Time `json:"timestamp"`
	Operation  string    `json:"operation"`
	Entity     string    `json:"entity"`
	Message    string    `json:"message"`
	IsResolved bool      `json:"isResolved"`
}

type SyncStatus struct {
	IsConnected        bool        `json:"isConnected"`
	LastSuccessfulSync *time.Time  `json:"lastSuccessfulSync"`
	LastAttemptedSync  *time.Time  `json:"lastAttemptedSync"`
	Errors             []SyncError `json:"errors"`
	PendingChanges     int         `json:"pendingChanges"`
}

// SyncOutcome is what the upstream-sync collaborator reports back for
// one attempt; the sync recorder worker folds it into the status row.
type SyncOutcome struct {
	PractitionerID string
	Operation      string
	Entity         string
	At             time.Time
	Err            string
}
