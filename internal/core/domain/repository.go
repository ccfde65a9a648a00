package domain

import (
	"context"
	"time"
)

type PractitionerRepository interface {
	// Create persists a new practitioner account.
	Create(ctx context.Context, p *Practitioner) error

	// GetByID retrieves a practitioner by its unique identifier.
	GetByID(ctx context.Context, id string) (*Practitioner, error)

	// GetByEmail retrieves a practitioner by login email.
	GetByEmail(ctx context.Context, email string) (*Practitioner, error)
}

type SessionRepository interface {
	// Create persists a new session record.
	Create(ctx context.Context, row *SessionRow) error

	// GetByID retrieves a single session row.
	GetByID(ctx context.Context, id string) (*SessionRow, error)

	// ListByPractitionerAndDay retrieves the session+client join rows
	// for one practitioner on one calendar day, ordered by start time.
	ListByPractitionerAndDay(ctx context.Context, practitionerID string, day time.Time) ([]SessionRow, error)

	// UpdateStatus moves a session to a new status.
	UpdateStatus(ctx context.Context, id, status string) error
}

// StatsRepository reads the three statistical views. Implementations
// return (nil, nil) when a view has no row for the practitioner; the
// aggregator fills the record from defaults.
type StatsRepository interface {
	GetWeekly(ctx context.Context, practitionerID string, asOf time.Time) (*WeeklyStatsRow, error)
	GetMonthly(ctx context.Context, practitionerID string, asOf time.Time) (*MonthlyStatsRow, error)
	GetUpcoming(ctx context.Context, practitionerID string, asOf time.Time) (*UpcomingStatsRow, error)
}

type SyncStatusRepository interface {
	// GetByPractitionerID returns (nil, nil) for a practitioner that
	// has never synced.
	GetByPractitionerID(ctx context.Context, practitionerID string) (*SyncStatusRow, error)

	// RecordOutcome folds one sync attempt into the status row,
	// creating it if absent. A successful outcome clears the last
	// error and resets the pending counter.
	RecordOutcome(ctx context.Context, outcome SyncOutcome) error

	// AddPendingChange increments the pending-change counter after a
	// local mutation that has not yet been pushed upstream.
	AddPendingChange(ctx context.Context, practitionerID string) error
}
