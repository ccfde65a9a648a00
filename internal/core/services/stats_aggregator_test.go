package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

func TestBuildWeeklyStats(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2024, 5, 22, 11, 0, 0, 0, time.UTC) // a Wednesday

	t.Run("Maps a populated row with completion rate", func(t *testing.T) {
		row := &domain.WeeklyStatsRow{
			WeekStart:         time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			WeekEnd:           time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC),
			CompletedSessions: intPtr(18),
			TotalSessions:     intPtr(20),
			ScheduledSessions: intPtr(22),
			MaxSessions:       intPtr(28),
			NoShows:           intPtr(1),
			Cancellations:     intPtr(1),
			CurrentRevenue:    strPtr("3960.50"),
			RevenueTarget:     strPtr("5600"),
		}

		stats := BuildWeeklyStats(row, asOf, nil)

		assert.Equal(t, "2024-05-20", stats.WeekStart)
		assert.Equal(t, "2024-05-26", stats.WeekEnd)
		assert.Equal(t, 18, stats.CurrentSessions)
		assert.Equal(t, 90, stats.CompletionRate)
		assert.Equal(t, 3960.50, stats.CurrentRevenue)
		assert.Equal(t, 5600.0, stats.RevenueTarget)
	})

	t.Run("Zero total sessions gives zero completion rate", func(t *testing.T) {
		row := &domain.WeeklyStatsRow{
			WeekStart:         time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			WeekEnd:           time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC),
			CompletedSessions: intPtr(3),
			TotalSessions:     intPtr(0),
		}

		stats := BuildWeeklyStats(row, asOf, nil)

		assert.Equal(t, 0, stats.CompletionRate)
	})

	t.Run("Nil row falls back to the default practice shape", func(t *testing.T) {
		warnings := &domain.WarningList{}

		stats := BuildWeeklyStats(nil, asOf, warnings)

		assert.Equal(t, "2024-05-20", stats.WeekStart)
		assert.Equal(t, "2024-05-26", stats.WeekEnd)
		assert.Equal(t, 0, stats.CurrentSessions)
		assert.Equal(t, defaultMaxWeeklySessions, stats.MaxSessions)
		assert.Equal(t, float64(defaultWeeklyRevenueTarget), stats.RevenueTarget)
		assert.Equal(t, 1, warnings.Len())
	})

	t.Run("Non-numeric revenue coerces to zero with a warning", func(t *testing.T) {
		warnings := &domain.WarningList{}
		row := &domain.WeeklyStatsRow{
			WeekStart:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			WeekEnd:        time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC),
			CurrentRevenue: strPtr("not-a-number"),
		}

		stats := BuildWeeklyStats(row, asOf, warnings)

		assert.Equal(t, 0.0, stats.CurrentRevenue)
		require.GreaterOrEqual(t, warnings.Len(), 1)
		assert.Equal(t, "currentRevenue", warnings.Entries()[0].Field)
	})
}

func TestProjectRevenue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		earned      float64
		dayOfMonth  int
		daysInMonth int
		wantPace    float64
		wantYearly  int
	}{
		{"Mid-month extrapolation", 3000, 15, 30, 6000, 72000},
		{"First day of month", 200, 1, 31, 6200, 74400},
		{"Zero day guard keeps earned as pace", 3000, 0, 30, 3000, 36000},
		{"Nothing earned projects nothing", 0, 10, 30, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pace, yearly := ProjectRevenue(tt.earned, tt.dayOfMonth, tt.daysInMonth)
			assert.InDelta(t, tt.wantPace, pace, 0.001)
			assert.Equal(t, tt.wantYearly, yearly)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, DaysInMonth(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 29, DaysInMonth(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, DaysInMonth(time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestBuildMonthlyStats(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC) // day 15 of 30

	t.Run("Derives projection from partial month", func(t *testing.T) {
		row := &domain.MonthlyStatsRow{
			MonthLabel:       strPtr("April 2024"),
			CurrentRevenue:   strPtr("3000"),
			RevenueTarget:    strPtr("8000"),
			SessionCount:     intPtr(45),
			AvgSessionValue:  strPtr("180.50"),
			MedicareRevenue:  strPtr("1500"),
			PrivateRevenue:   strPtr("900"),
			DVARevenue:       strPtr("200"),
			WorkCoverRevenue: strPtr("250"),
			NDISRevenue:      strPtr("150"),
		}

		stats := BuildMonthlyStats(row, asOf, nil)

		assert.Equal(t, "April 2024", stats.Month)
		assert.InDelta(t, 6000, stats.ProjectedRevenue, 0.001)
		assert.Equal(t, 72000, stats.YearlyProjection)
		assert.Equal(t, 45, stats.SessionCount)
		assert.Equal(t, 180.50, stats.AvgSessionValue)
		assert.Equal(t, 1500.0, stats.RevenueBreakdown.Medicare)
		assert.Equal(t, 150.0, stats.RevenueBreakdown.NDIS)
	})

	t.Run("Nil row defaults and labels the month from asOf", func(t *testing.T) {
		warnings := &domain.WarningList{}

		stats := BuildMonthlyStats(nil, asOf, warnings)

		assert.Equal(t, "April 2024", stats.Month)
		assert.Equal(t, 0.0, stats.CurrentRevenue)
		assert.Equal(t, float64(defaultMonthlyRevenueTarget), stats.RevenueTarget)
		assert.Equal(t, 0, stats.YearlyProjection)
		assert.Equal(t, 1, warnings.Len())
	})
}

func TestBuildUpcomingStats(t *testing.T) {
	t.Parallel()

	t.Run("Maps a populated row", func(t *testing.T) {
		row := &domain.UpcomingStatsRow{
			SessionsTomorrow:  intPtr(6),
			RemainingThisWeek: intPtr(14),
			SessionsNextWeek:  intPtr(21),
			PlansEndingSoon:   intPtr(3),
			NeedingFollowUp:   intPtr(2),
			UnbookedRegulars:  intPtr(4),
		}

		stats := BuildUpcomingStats(row, nil)

		assert.Equal(t, 6, stats.SessionsTomorrow)
		assert.Equal(t, 21, stats.SessionsNextWeek)
		assert.Equal(t, 4, stats.UnbookedRegulars)
	})

	t.Run("Nil row yields all-zero counts", func(t *testing.T) {
		warnings := &domain.WarningList{}

		stats := BuildUpcomingStats(nil, warnings)

		assert.Equal(t, domain.UpcomingStats{}, stats)
		assert.Equal(t, 1, warnings.Len())
	})
}
