package domain

import "time"

// DashboardRows bundles the raw rows one dashboard composition reads.
// Any of the pointers may be nil when the underlying view returned no
// record; Sessions may be empty.
type DashboardRows struct {
	Sessions []SessionRow
	Weekly   *WeeklyStatsRow
	Monthly  *MonthlyStatsRow
	Upcoming *UpcomingStatsRow
	Sync     *SyncStatusRow
}

// DashboardResponse is the terminal artifact of one dashboard request.
// It is recomputed from source rows on every call and never persisted.
type DashboardResponse struct {
	Practitioner   PractitionerSummary `json:"practitioner"`
	TodaysSessions []SessionFeedItem   `json:"todaysSessions"`
	WeeklyStats    WeeklyStats         `json:"weeklyStats"`
	MonthlyStats   MonthlyStats        `json:"monthlyStats"`
	UpcomingStats  UpcomingStats       `json:"upcomingStats"`
	LastUpdated    time.Time           `json:"lastUpdated"`
	SyncStatus     SyncStatus          `json:"syncStatus"`
}
