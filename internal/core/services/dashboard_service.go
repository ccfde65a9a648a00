package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

type DashboardService struct {
	practitionerRepo domain.PractitionerRepository
	sessionRepo      domain.SessionRepository
	statsRepo        domain.StatsRepository
	syncRepo         domain.SyncStatusRepository
}

func NewDashboardService(
	practitionerRepo domain.PractitionerRepository,
	sessionRepo domain.SessionRepository,
	statsRepo domain.StatsRepository,
	syncRepo domain.SyncStatusRepository,
) *DashboardService {
	return &DashboardService{
		practitionerRepo: practitionerRepo,
		sessionRepo:      sessionRepo,
		statsRepo:        statsRepo,
		syncRepo:         syncRepo,
	}
}

// Compose builds the full dashboard for one practitioner as of the
// given instant. The practitioner lookup is the only hard failure;
// everything downstream degrades to defaults instead of erroring.
func (s *DashboardService) Compose(ctx context.Context, practitionerID string, asOf time.Time) (*domain.DashboardResponse, error) {
	practitioner, err := s.practitionerRepo.GetByID(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	var rows domain.DashboardRows

	rows.Sessions, err = s.sessionRepo.ListByPractitionerAndDay(ctx, practitionerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: sessions query failed: %w", err)
	}

	rows.Weekly, err = s.statsRepo.GetWeekly(ctx, practitionerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: weekly stats query failed: %w", err)
	}

	rows.Monthly, err = s.statsRepo.GetMonthly(ctx, practitionerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: monthly stats query failed: %w", err)
	}

	rows.Upcoming, err = s.statsRepo.GetUpcoming(ctx, practitionerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: upcoming stats query failed: %w", err)
	}

	rows.Sync, err = s.syncRepo.GetByPractitionerID(ctx, practitionerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: sync status query failed: %w", err)
	}

	warnings := &domain.WarningList{}
	resp := BuildDashboard(practitioner, rows, asOf, warnings)

	for _, w := range warnings.Entries() {
		log.Printf("[DASHBOARD] defaulted %s (practitioner %s)", w, practitionerID)
	}

	return resp, nil
}

// BuildDashboard is the pure composition over pre-fetched rows. Given
// the same inputs it always produces the same response, which is what
// keeps the whole aggregation testable without a live store.
func BuildDashboard(practitioner *domain.Practitioner, rows domain.DashboardRows, asOf time.Time, warnings *domain.WarningList) *domain.DashboardResponse {
	items := make([]domain.SessionFeedItem, 0, len(rows.Sessions))
	for _, row := range rows.Sessions {
		items = append(items, NormalizeSession(row, warnings))
	}
	SortSessionsByTime(items)

	upNextID, _ := ResolveUpNext(items, domain.MinutesOfDay(asOf))
	MarkUpNext(items, upNextID)

	return &domain.DashboardResponse{
		Practitioner:   practitioner.Summary(),
		TodaysSessions: items,
		WeeklyStats:    BuildWeeklyStats(rows.Weekly, asOf, warnings),
		MonthlyStats:   BuildMonthlyStats(rows.Monthly, asOf, warnings),
		UpcomingStats:  BuildUpcomingStats(rows.Upcoming, warnings),
		LastUpdated:    asOf,
		SyncStatus:     NormalizeSyncStatus(rows.Sync),
	}
}
