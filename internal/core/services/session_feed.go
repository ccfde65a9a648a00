package services

import (
	"encoding/json"
	"sort"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

const (
	defaultMHCPTotal = 10
)

// NormalizeSession maps a raw session+client join row into the
// canonical feed item. Nullable columns get documented defaults and a
// malformed presenting-issues column degrades to an empty list; a bad
// stored value must never take the whole dashboard down.
func NormalizeSession(row domain.SessionRow, warnings *domain.WarningList) domain.SessionFeedItem {
	issues := []string{}
	if row.PresentingIssues != nil && *row.PresentingIssues != "" {
		if err := json.Unmarshal([]byte(*row.PresentingIssues), &issues); err != nil {
			issues = []string{}
			warnings.Add("sessions", "presentingIssues", "malformed JSON, defaulted to empty list")
		}
	}

	mhcpRemaining := 0
	if row.MHCPRemaining != nil {
		mhcpRemaining = *row.MHCPRemaining
	}

	mhcpTotal := defaultMHCPTotal
	if row.MHCPTotal != nil {
		mhcpTotal = *row.MHCPTotal
	}

	relationshipMonths := 0
	if row.RelationshipMonths != nil {
		relationshipMonths = *row.RelationshipMonths
	}

	locationType := domain.LocationInPerson
	if row.LocationType != nil && *row.LocationType != "" {
		locationType = *row.LocationType
	}

	return domain.SessionFeedItem{
		ID:                 row.ID,
		Time:               domain.FormatWallClock(row.StartsAt),
		StartMinutes:       domain.MinutesOfDay(row.StartsAt),
		ClientInitials:     row.ClientInitials,
		ClientID:           row.ClientID,
		SessionNumber:      row.SessionNumber,
		PresentingIssues:   issues,
		MHCPRemaining:      mhcpRemaining,
		MHCPTotal:          mhcpTotal,
		RelationshipMonths: relationshipMonths,
		Status:             row.Status,
		LocationType:       locationType,
	}
}

// ResolveUpNext picks the session to highlight as "up next": the
// earliest scheduled or confirmed session starting after nowMinutes.
// When every qualifying session is already in the past, the day's
// earliest one is still surfaced. That fallback is long-standing
// product behavior, kept deliberately even though a day of only past
// sessions arguably deserves no badge at all.
func ResolveUpNext(items []domain.SessionFeedItem, nowMinutes int) (string, bool) {
	var candidates []domain.SessionFeedItem
	for _, item := range items {
		if item.Status == domain.SessionStatusScheduled || item.Status == domain.SessionStatusConfirmed {
			candidates = append(candidates, item)
		}
	}

	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StartMinutes < candidates[j].StartMinutes
	})

	for _, c := range candidates {
		if c.StartMinutes > nowMinutes {
			return c.ID, true
		}
	}

	return candidates[0].ID, true
}

// MarkUpNext sets IsUpNext on the item matching id and clears it on
// every other item. The assignment is unconditional so no stale flag
// from a previous pass can survive.
func MarkUpNext(items []domain.SessionFeedItem, id string) {
	for i := range items {
		items[i].IsUpNext = items[i].ID == id
	}
}

// SortSessionsByTime orders the feed chronologically by start time.
func SortSessionsByTime(items []domain.SessionFeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartMinutes < items[j].StartMinutes
	})
}
