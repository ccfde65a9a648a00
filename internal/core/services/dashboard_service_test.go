package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/bloomcare/bloom-practice-engine/internal/core/services"
)

type MockPractitionerRepo struct {
	mock.Mock
}

func (m *MockPractitionerRepo) Create(ctx context.Context, p *domain.Practitioner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPractitionerRepo) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Practitioner), args.Error(1)
}

func (m *MockPractitionerRepo) GetByEmail(ctx context.Context, email string) (*domain.Practitioner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Practitioner), args.Error(1)
}

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, row *domain.SessionRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id string) (*domain.SessionRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRow), args.Error(1)
}

func (m *MockSessionRepo) ListByPractitionerAndDay(ctx context.Context, practitionerID string, day time.Time) ([]domain.SessionRow, error) {
	args := m.Called(ctx, practitionerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionRow), args.Error(1)
}

func (m *MockSessionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) GetWeekly(ctx context.Context, practitionerID string, asOf time.Time) (*domain.WeeklyStatsRow, error) {
	args := m.Called(ctx, practitionerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyStatsRow), args.Error(1)
}

func (m *MockStatsRepo) GetMonthly(ctx context.Context, practitionerID string, asOf time.Time) (*domain.MonthlyStatsRow, error) {
	args := m.Called(ctx, practitionerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyStatsRow), args.Error(1)
}

func (m *MockStatsRepo) GetUpcoming(ctx context.Context, practitionerID string, asOf time.Time) (*domain.UpcomingStatsRow, error) {
	args := m.Called(ctx, practitionerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpcomingStatsRow), args.Error(1)
}

type MockSyncRepo struct {
	mock.Mock
}

func (m *MockSyncRepo) GetByPractitionerID(ctx context.Context, practitionerID string) (*domain.SyncStatusRow, error) {
	args := m.Called(ctx, practitionerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncStatusRow), args.Error(1)
}

func (m *MockSyncRepo) RecordOutcome(ctx context.Context, outcome domain.SyncOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

func (m *MockSyncRepo) AddPendingChange(ctx context.Context, practitionerID string) error {
	args := m.Called(ctx, practitionerID)
	return args.Error(0)
}

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func testPractitioner() *domain.Practitioner {
	return &domain.Practitioner{
		ID:         "p1",
		Email:      "sarah@clinic.com",
		FullName:   "Sarah Chen",
		Profession: "Clinical Psychologist",
	}
}

func TestDashboardService_Compose(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2024, 5, 22, 11, 0, 0, 0, time.UTC)

	day := func(hour, minute int) time.Time {
		return time.Date(2024, 5, 22, hour, minute, 0, 0, time.UTC)
	}

	t.Run("Success: composes the full dashboard with up-next resolved", func(t *testing.T) {
		practitionerRepo := new(MockPractitionerRepo)
		sessionRepo := new(MockSessionRepo)
		statsRepo := new(MockStatsRepo)
		syncRepo := new(MockSyncRepo)

		svc := services.NewDashboardService(practitionerRepo, sessionRepo, statsRepo, syncRepo)

		practitionerRepo.On("GetByID", ctx, "p1").Return(testPractitioner(), nil)

		rows := []domain.SessionRow{
			{ID: "s3", PractitionerID: "p1", StartsAt: day(13, 0), Status: domain.SessionStatusScheduled, ClientInitials: "MB"},
			{ID: "s1", PractitionerID: "p1", StartsAt: day(9, 0), Status: domain.SessionStatusCompleted, ClientInitials: "JD"},
			{ID: "s2", PractitionerID: "p1", StartsAt: day(10, 30), Status: domain.SessionStatusScheduled, ClientInitials: "AK"},
		}
		sessionRepo.On("ListByPractitionerAndDay", ctx, "p1", asOf).Return(rows, nil)

		statsRepo.On("GetWeekly", ctx, "p1", asOf).Return(&domain.WeeklyStatsRow{
			WeekStart:         time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			WeekEnd:           time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC),
			CompletedSessions: ptrInt(9),
			TotalSessions:     ptrInt(10),
			CurrentRevenue:    ptrStr("1980"),
		}, nil)
		statsRepo.On("GetMonthly", ctx, "p1", asOf).Return(&domain.MonthlyStatsRow{
			CurrentRevenue: ptrStr("6600"),
		}, nil)
		statsRepo.On("GetUpcoming", ctx, "p1", asOf).Return(&domain.UpcomingStatsRow{
			SessionsTomorrow: ptrInt(5),
		}, nil)
		syncRepo.On("GetByPractitionerID", ctx, "p1").Return(nil, nil)

		resp, err := svc.Compose(ctx, "p1", asOf)

		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "Sarah Chen", resp.Practitioner.FullName)
		assert.Equal(t, asOf, resp.LastUpdated)

		// Chronological ordering.
		require.Len(t, resp.TodaysSessions, 3)
		assert.Equal(t, "s1", resp.TodaysSessions[0].ID)
		assert.Equal(t, "s2", resp.TodaysSessions[1].ID)
		assert.Equal(t, "s3", resp.TodaysSessions[2].ID)

		// 11:00 AM: s2 already started, s3 is next; exactly one flag.
		upNext := 0
		for _, s := range resp.TodaysSessions {
			if s.IsUpNext {
				upNext++
				assert.Equal(t, "s3", s.ID)
			}
		}
		assert.Equal(t, 1, upNext)

		assert.Equal(t, 90, resp.WeeklyStats.CompletionRate)
		assert.Equal(t, 5, resp.UpcomingStats.SessionsTomorrow)
		assert.True(t, resp.SyncStatus.IsConnected)
		assert.Empty(t, resp.SyncStatus.Errors)
	})

	t.Run("Fail fast: unknown practitioner stops the pipeline", func(t *testing.T) {
		practitionerRepo := new(MockPractitionerRepo)
		sessionRepo := new(MockSessionRepo)
		statsRepo := new(MockStatsRepo)
		syncRepo := new(MockSyncRepo)

		svc := services.NewDashboardService(practitionerRepo, sessionRepo, statsRepo, syncRepo)

		practitionerRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrPractitionerNotFound)

		resp, err := svc.Compose(ctx, "ghost", asOf)

		assert.ErrorIs(t, err, domain.ErrPractitionerNotFound)
		assert.Nil(t, resp)
		sessionRepo.AssertNotCalled(t, "ListByPractitionerAndDay")
		statsRepo.AssertNotCalled(t, "GetWeekly")
	})

	t.Run("Absent stats rows degrade to defaults, never error", func(t *testing.T) {
		practitionerRepo := new(MockPractitionerRepo)
		sessionRepo := new(MockSessionRepo)
		statsRepo := new(MockStatsRepo)
		syncRepo := new(MockSyncRepo)

		svc := services.NewDashboardService(practitionerRepo, sessionRepo, statsRepo, syncRepo)

		practitionerRepo.On("GetByID", ctx, "p1").Return(testPractitioner(), nil)
		sessionRepo.On("ListByPractitionerAndDay", ctx, "p1", asOf).Return([]domain.SessionRow{}, nil)
		statsRepo.On("GetWeekly", ctx, "p1", asOf).Return(nil, nil)
		statsRepo.On("GetMonthly", ctx, "p1", asOf).Return(nil, nil)
		statsRepo.On("GetUpcoming", ctx, "p1", asOf).Return(nil, nil)
		syncRepo.On("GetByPractitionerID", ctx, "p1").Return(nil, nil)

		resp, err := svc.Compose(ctx, "p1", asOf)

		require.NoError(t, err)
		assert.Empty(t, resp.TodaysSessions)
		assert.Equal(t, 0, resp.WeeklyStats.CompletionRate)
		assert.Equal(t, 0, resp.UpcomingStats.SessionsTomorrow)
		assert.True(t, resp.SyncStatus.IsConnected)
	})

	t.Run("Store error on rows propagates", func(t *testing.T) {
		practitionerRepo := new(MockPractitionerRepo)
		sessionRepo := new(MockSessionRepo)
		statsRepo := new(MockStatsRepo)
		syncRepo := new(MockSyncRepo)

		svc := services.NewDashboardService(practitionerRepo, sessionRepo, statsRepo, syncRepo)

		dbErr := errors.New("connection reset")
		practitionerRepo.On("GetByID", ctx, "p1").Return(testPractitioner(), nil)
		sessionRepo.On("ListByPractitionerAndDay", ctx, "p1", asOf).Return(nil, dbErr)

		resp, err := svc.Compose(ctx, "p1", asOf)

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, resp)
	})
}

func TestBuildDashboard_Deterministic(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2024, 5, 22, 11, 0, 0, 0, time.UTC)
	rows := domain.DashboardRows{
		Sessions: []domain.SessionRow{
			{ID: "s1", StartsAt: time.Date(2024, 5, 22, 9, 0, 0, 0, time.UTC), Status: domain.SessionStatusScheduled},
		},
		Monthly: &domain.MonthlyStatsRow{CurrentRevenue: ptrStr("3000")},
	}

	first := services.BuildDashboard(testPractitioner(), rows, asOf, nil)
	second := services.BuildDashboard(testPractitioner(), rows, asOf, nil)

	assert.Equal(t, first, second)

	// Day 22 of 31: 3000/22*31 monthly pace, rounded *12 yearly.
	assert.InDelta(t, 4227.27, first.MonthlyStats.ProjectedRevenue, 0.01)
	assert.Equal(t, 50727, first.MonthlyStats.YearlyProjection)
}
