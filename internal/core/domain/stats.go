package domain

import "time"

// Raw rows come from the weekly/monthly/upcoming statistical views.
// Every column is nullable because the views return nothing for a
// practice with no recorded activity; money columns arrive as text the
// way decimal columns come off the driver.

type WeeklyStatsRow struct {
	WeekStart         time.Time `db:"week_start"`
	WeekEnd           time.Time `db:"week_end"`
	CompletedSessions *int      `db:"completed_sessions"`
	TotalSessions     *int      `db:"total_sessions"`
	ScheduledSessions *int      `db:"scheduled_sessions"`
	MaxSessions       *int      `db:"max_sessions"`
	NoShows           *int      `db:"no_shows"`
	Cancellations     *int      `db:"cancellations"`
	CurrentRevenue    *string   `db:"current_revenue"`
	RevenueTarget     *string   `db:"revenue_target"`
}

type MonthlyStatsRow struct {
	MonthLabel       *string `db:"month_label"`
	CurrentRevenue   *string `db:"current_revenue"`
	RevenueTarget    *string `db:"revenue_target"`
	SessionCount     *int    `db:"session_count"`
	AvgSessionValue  *string `db:"avg_session_value"`
	MedicareRevenue  *string `db:"medicare_revenue"`
	PrivateRevenue   *string `db:"private_revenue"`
	DVARevenue       *string `db:"dva_revenue"`
	WorkCoverRevenue *string `db:"workcover_revenue"`
	NDISRevenue      *string `db:"ndis_revenue"`
}

type UpcomingStatsRow struct {
	SessionsTomorrow  *int `db:"sessions_tomorrow"`
	RemainingThisWeek *int `db:"remaining_this_week"`
	SessionsNextWeek  *int `db:"sessions_next_week"`
	PlansEndingSoon   *int `db:"plans_ending_soon"`
	NeedingFollowUp   *int `db:"needing_follow_up"`
	UnbookedRegulars  *int `db:"unbooked_regulars"`
}

// WeeklyStats is the canonical weekly record. CompletionRate is a 0-100
// integer percentage of completed over total sessions, 0 when total is
// zero.
type WeeklyStats struct {
	WeekStart         string  `json:"weekStart"`
	WeekEnd           string  `json:"weekEnd"`
	CurrentSessions   int     `json:"currentSessions"`
	ScheduledSessions int     `json:"scheduledSessions"`
	MaxSessions       int     `json:"maxSessions"`
	NoShows           int     `json:"noShows"`
	Cancellations     int     `json:"cancellations"`
	CurrentRevenue    float64 `json:"currentRevenue"`
	RevenueTarget     float64 `json:"revenueTarget"`
	CompletionRate    int     `json:"completionRate"`
}

// RevenueBreakdown splits monthly revenue by billing category. The
// categories need not sum to the monthly total.
type RevenueBreakdown struct {
	Medicare  float64 `json:"medicare"`
	Private   float64 `json:"private"`
	DVA       float64 `json:"dva"`
	WorkCover float64 `json:"workcover"`
	NDIS      float64 `json:"ndis"`
}

type MonthlyStats struct {
	Month            string           `json:"month"`
	CurrentRevenue   float64          `json:"currentRevenue"`
	RevenueTarget    float64          `json:"revenueTarget"`
	ProjectedRevenue float64          `json:"projectedRevenue"`
	YearlyProjection int              `json:"yearlyProjection"`
	SessionCount     int              `json:"sessionCount"`
	AvgSessionValue  float64          `json:"avgSessionValue"`
	RevenueBreakdown RevenueBreakdown `json:"revenueBreakdown"`
}

type UpcomingStats struct {
	SessionsTomorrow  int `json:"sessionsTomorrow"`
	RemainingThisWeek int `json:"remainingThisWeek"`
	SessionsNextWeek  int `json:"sessionsNextWeek"`
	PlansEndingSoon   int `json:"plansEndingSoon"`
	NeedingFollowUp   int `json:"needingFollowUp"`
	UnbookedRegulars  int `json:"unbookedRegulars"`
}
