package services

import (
	"math"
	"strconv"
	"time"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

// Fallback targets for a practice with no recorded configuration.
// These describe a typical full-time solo practice and are product
// configuration, not computed values.
const (
	defaultMaxWeeklySessions    = 30
	defaultWeeklyRevenueTarget  = 6000
	defaultMonthlyRevenueTarget = 24000
)

// coerceMoney parses a decimal-as-text column, treating nil, empty and
// unparseable values as zero.
func coerceMoney(raw *string, component, field string, warnings *domain.WarningList) float64 {
	if raw == nil || *raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		warnings.Add(component, field, "non-numeric value, defaulted to 0")
		return 0
	}
	return v
}

func intOr(raw *int, fallback int) int {
	if raw == nil {
		return fallback
	}
	return *raw
}

// BuildWeeklyStats maps a raw weekly view row into the canonical
// record. A nil row produces a record built entirely from defaults.
func BuildWeeklyStats(row *domain.WeeklyStatsRow, asOf time.Time, warnings *domain.WarningList) domain.WeeklyStats {
	if row == nil {
		warnings.Add("weeklyStats", "row", "no weekly stats row, using defaults")
		weekStart := asOf.AddDate(0, 0, -int((asOf.Weekday()+6)%7))
		return domain.WeeklyStats{
			WeekStart:     weekStart.Format("2006-01-02"),
			WeekEnd:       weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
			MaxSessions:   defaultMaxWeeklySessions,
			RevenueTarget: defaultWeeklyRevenueTarget,
		}
	}

	completed := intOr(row.CompletedSessions, 0)
	total := intOr(row.TotalSessions, 0)

	completionRate := 0
	if total > 0 {
		completionRate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	target := coerceMoney(row.RevenueTarget, "weeklyStats", "revenueTarget", warnings)
	if target == 0 {
		target = defaultWeeklyRevenueTarget
	}

	return domain.WeeklyStats{
		WeekStart:         row.WeekStart.Format("2006-01-02"),
		WeekEnd:           row.WeekEnd.Format("2006-01-02"),
		CurrentSessions:   completed,
		ScheduledSessions: intOr(row.ScheduledSessions, 0),
		MaxSessions:       intOr(row.MaxSessions, defaultMaxWeeklySessions),
		NoShows:           intOr(row.NoShows, 0),
		Cancellations:     intOr(row.Cancellations, 0),
		CurrentRevenue:    coerceMoney(row.CurrentRevenue, "weeklyStats", "currentRevenue", warnings),
		RevenueTarget:     target,
		CompletionRate:    completionRate,
	}
}

// ProjectRevenue extrapolates a month's revenue linearly from the
// partial month earned so far. Seasonality is ignored on purpose.
func ProjectRevenue(earnedThisMonth float64, dayOfMonth, daysInMonth int) (monthlyPace float64, yearlyProjection int) {
	monthlyPace = earnedThisMonth
	if dayOfMonth > 0 {
		monthlyPace = earnedThisMonth / float64(dayOfMonth) * float64(daysInMonth)
	}
	yearlyProjection = int(math.Round(monthlyPace * 12))
	return monthlyPace, yearlyProjection
}

// DaysInMonth returns the number of calendar days in asOf's month.
func DaysInMonth(asOf time.Time) int {
	return time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).
		AddDate(0, 1, -1).Day()
}

// BuildMonthlyStats maps a raw monthly view row into the canonical
// record, deriving the projection figures from the day-of-month ratio.
func BuildMonthlyStats(row *domain.MonthlyStatsRow, asOf time.Time, warnings *domain.WarningList) domain.MonthlyStats {
	if row == nil {
		warnings.Add("monthlyStats", "row", "no monthly stats row, using defaults")
		return domain.MonthlyStats{
			Month:         asOf.Format("January 2006"),
			RevenueTarget: defaultMonthlyRevenueTarget,
		}
	}

	month := asOf.Format("January 2006")
	if row.MonthLabel != nil && *row.MonthLabel != "" {
		month = *row.MonthLabel
	}

	current := coerceMoney(row.CurrentRevenue, "monthlyStats", "currentRevenue", warnings)

	target := coerceMoney(row.RevenueTarget, "monthlyStats", "revenueTarget", warnings)
	if target == 0 {
		target = defaultMonthlyRevenueTarget
	}

	pace, yearly := ProjectRevenue(current, asOf.Day(), DaysInMonth(asOf))

	return domain.MonthlyStats{
		Month:            month,
		CurrentRevenue:   current,
		RevenueTarget:    target,
		ProjectedRevenue: pace,
		YearlyProjection: yearly,
		SessionCount:     intOr(row.SessionCount, 0),
		AvgSessionValue:  coerceMoney(row.AvgSessionValue, "monthlyStats", "avgSessionValue", warnings),
		RevenueBreakdown: domain.RevenueBreakdown{
			Medicare:  coerceMoney(row.MedicareRevenue, "monthlyStats", "medicareRevenue", warnings),
			Private:   coerceMoney(row.PrivateRevenue, "monthlyStats", "privateRevenue", warnings),
			DVA:       coerceMoney(row.DVARevenue, "monthlyStats", "dvaRevenue", warnings),
			WorkCover: coerceMoney(row.WorkCoverRevenue, "monthlyStats", "workcoverRevenue", warnings),
			NDIS:      coerceMoney(row.NDISRevenue, "monthlyStats", "ndisRevenue", warnings),
		},
	}
}

// BuildUpcomingStats maps a raw upcoming view row into the canonical
// record. A nil row yields all-zero counts.
func BuildUpcomingStats(row *domain.UpcomingStatsRow, warnings *domain.WarningList) domain.UpcomingStats {
	if row == nil {
		warnings.Add("upcomingStats", "row", "no upcoming stats row, using defaults")
		return domain.UpcomingStats{}
	}

	return domain.UpcomingStats{
		SessionsTomorrow:  intOr(row.SessionsTomorrow, 0),
		RemainingThisWeek: intOr(row.RemainingThisWeek, 0),
		SessionsNextWeek:  intOr(row.SessionsNextWeek, 0),
		PlansEndingSoon:   intOr(row.PlansEndingSoon, 0),
		NeedingFollowUp:   intOr(row.NeedingFollowUp, 0),
		UnbookedRegulars:  intOr(row.UnbookedRegulars, 0),
	}
}
