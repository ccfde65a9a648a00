package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/bloomcare/bloom-practice-engine/internal/core/workers"
)

type SessionService struct {
	repo     domain.SessionRepository
	recorder *workers.SyncRecorder
}

func NewSessionService(repo domain.SessionRepository, recorder *workers.SyncRecorder) *SessionService {
	return &SessionService{
		repo:     repo,
		recorder: recorder,
	}
}

type CreateSessionInput struct {
	PractitionerID string
	ClientID       string
	ClientInitials string
	StartsAt       time.Time
	SessionNumber  int
	LocationType   string
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*domain.SessionRow, error) {
	location := input.LocationType
	if location == "" {
		location = domain.LocationInPerson
	}
	if location != domain.LocationInPerson && location != domain.LocationTelehealth {
		return nil, domain.ErrInvalidLocationType
	}

	sessionNumber := input.SessionNumber
	if sessionNumber < 1 {
		sessionNumber = 1
	}

	row := &domain.SessionRow{
		ID:             uuid.NewString(),
		PractitionerID: input.PractitionerID,
		ClientID:       input.ClientID,
		ClientInitials: input.ClientInitials,
		StartsAt:       input.StartsAt,
		SessionNumber:  sessionNumber,
		Status:         domain.SessionStatusScheduled,
		LocationType:   &location,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.recorder.RecordPendingChange(input.PractitionerID, "create", "session")

	return row, nil
}

// ListForDay returns the normalized session feed for one calendar day,
// chronologically ordered. Up-next resolution belongs to the dashboard
// composition, not the raw feed.
func (s *SessionService) ListForDay(ctx context.Context, practitionerID string, day time.Time) ([]domain.SessionFeedItem, error) {
	rows, err := s.repo.ListByPractitionerAndDay(ctx, practitionerID, day)
	if err != nil {
		return nil, err
	}

	warnings := &domain.WarningList{}
	items := make([]domain.SessionFeedItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, NormalizeSession(row, warnings))
	}
	SortSessionsByTime(items)

	for _, w := range warnings.Entries() {
		log.Printf("[SESSIONS] defaulted %s (practitioner %s)", w, practitionerID)
	}

	return items, nil
}

func (s *SessionService) UpdateStatus(ctx context.Context, practitionerID, sessionID, status string) error {
	if !domain.IsValidSessionStatus(status) {
		return domain.ErrInvalidSessionStatus
	}

	row, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if row.PractitionerID != practitionerID {
		return domain.ErrUnauthorized
	}

	if err := s.repo.UpdateStatus(ctx, sessionID, status); err != nil {
		return err
	}

	s.recorder.RecordPendingChange(practitionerID, "update", "session")

	return nil
}
