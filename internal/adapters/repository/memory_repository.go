package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

// In-memory repositories back local development and the end-to-end
// tests; they mirror the Postgres implementations' observable behavior,
// including (nil, nil) for absent stats and sync rows.

type InMemoryPractitionerRepository struct {
	store map[string]*domain.Practitioner

	mu sync.RWMutex
}

func NewInMemoryPractitionerRepository() *InMemoryPractitionerRepository {
	return &InMemoryPractitionerRepository{
		store: make(map[string]*domain.Practitioner),
	}
}

func (r *InMemoryPractitionerRepository) Create(ctx context.Context, p *domain.Practitioner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.Email == p.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[p.ID] = p
	return nil
}

func (r *InMemoryPractitionerRepository) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[id]
	if !ok {
		return nil, domain.ErrPractitionerNotFound
	}
	return p, nil
}

func (r *InMemoryPractitionerRepository) GetByEmail(ctx context.Context, email string) (*domain.Practitioner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.store {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrPractitionerNotFound
}

type InMemorySessionRepository struct {
	store map[string]*domain.SessionRow

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[string]*domain.SessionRow),
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, row *domain.SessionRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *row
	r.store[row.ID] = &copied
	return nil
}

func (r *InMemorySessionRepository) GetByID(ctx context.Context, id string) (*domain.SessionRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *InMemorySessionRepository) ListByPractitionerAndDay(ctx context.Context, practitionerID string, day time.Time) ([]domain.SessionRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var rows []domain.SessionRow
	for _, row := range r.store {
		if row.PractitionerID != practitionerID {
			continue
		}
		if row.StartsAt.Before(dayStart) || !row.StartsAt.Before(dayEnd) {
			continue
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StartsAt.Before(rows[j].StartsAt)
	})

	return rows, nil
}

func (r *InMemorySessionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.store[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	row.Status = status
	return nil
}

// InMemoryStatsRepository serves pre-seeded stats rows; it exists for
// tests and local development, where seeding a view is not an option.
type InMemoryStatsRepository struct {
	Weekly   map[string]*domain.WeeklyStatsRow
	Monthly  map[string]*domain.MonthlyStatsRow
	Upcoming map[string]*domain.UpcomingStatsRow

	mu sync.RWMutex
}

func NewInMemoryStatsRepository() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{
		Weekly:   make(map[string]*domain.WeeklyStatsRow),
		Monthly:  make(map[string]*domain.MonthlyStatsRow),
		Upcoming: make(map[string]*domain.UpcomingStatsRow),
	}
}

func (r *InMemoryStatsRepository) GetWeekly(ctx context.Context, practitionerID string, asOf time.Time) (*domain.WeeklyStatsRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Weekly[practitionerID], nil
}

func (r *InMemoryStatsRepository) GetMonthly(ctx context.Context, practitionerID string, asOf time.Time) (*domain.MonthlyStatsRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Monthly[practitionerID], nil
}

func (r *InMemoryStatsRepository) GetUpcoming(ctx context.Context, practitionerID string, asOf time.Time) (*domain.UpcomingStatsRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Upcoming[practitionerID], nil
}

type InMemorySyncRepository struct {
	store map[string]*domain.SyncStatusRow

	mu sync.RWMutex
}

func NewInMemorySyncRepository() *InMemorySyncRepository {
	return &InMemorySyncRepository{
		store: make(map[string]*domain.SyncStatusRow),
	}
}

func (r *InMemorySyncRepository) GetByPractitionerID(ctx context.Context, practitionerID string) (*domain.SyncStatusRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.store[practitionerID]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *InMemorySyncRepository) RecordOutcome(ctx context.Context, outcome domain.SyncOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.store[outcome.PractitionerID]
	if !ok {
		row = &domain.SyncStatusRow{PractitionerID: outcome.PractitionerID}
		r.store[outcome.PractitionerID] = row
	}

	at := outcome.At
	connected := outcome.Err == ""
	row.IsConnected = &connected
	row.LastAttemptedSync = &at

	if outcome.Err == "" {
		row.LastSuccessfulSync = &at
		row.LastErrorMessage = nil
		zero := 0
		row.PendingChanges = &zero
	} else {
		msg := outcome.Err
		row.LastErrorMessage = &msg
	}

	return nil
}

func (r *InMemorySyncRepository) AddPendingChange(ctx context.Context, practitionerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.store[practitionerID]
	if !ok {
		row = &domain.SyncStatusRow{PractitionerID: practitionerID}
		r.store[practitionerID] = row
	}

	pending := 1
	if row.PendingChanges != nil {
		pending = *row.PendingChanges + 1
	}
	row.PendingChanges = &pending

	return nil
}
