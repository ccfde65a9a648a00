package domain

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidSessionStatus = errors.New("invalid session status")
	ErrInvalidLocationType  = errors.New("invalid location type")
	ErrUnauthorized         = errors.New("unauthorized access to resource")
)

const (
	SessionStatusScheduled  = "scheduled"
	SessionStatusConfirmed  = "confirmed"
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
	SessionStatusNoShow     = "no-show"

	LocationTelehealth = "telehealth"
	LocationInPerson   = "in-person"
)

var validSessionStatuses = map[string]bool{
	SessionStatusScheduled:  true,
	SessionStatusConfirmed:  true,
	SessionStatusInProgress: true,
	SessionStatusCompleted:  true,
	SessionStatusCancelled:  true,
	SessionStatusNoShow:     true,
}

// IsValidSessionStatus reports whether status belongs to the closed
// status set.
func IsValidSessionStatus(status string) bool {
	return validSessionStatuses[status]
}

// SessionRow is the raw session+client join row as read from storage.
// Nullable columns are pointers; the normalizer applies defaults.
type SessionRow struct {
	ID                 string    `db:"id"`
	PractitionerID     string    `db:"practitioner_id"`
	StartsAt           time.Time `db:"starts_at"`
	ClientInitials     string    `db:"client_initials"`
	ClientID           string    `db:"client_id"`
	SessionNumber      int       `db:"session_number"`
	PresentingIssues   *string   `db:"presenting_issues"`
	MHCPRemaining      *int      `db:"mhcp_remaining"`
	MHCPTotal          *int      `db:"mhcp_total"`
	RelationshipMonths *int      `db:"relationship_months"`
	Status             string    `db:"status"`
	LocationType       *string   `db:"location_type"`
}

// SessionFeedItem is the canonical per-session entry of the daily feed.
// StartMinutes carries the parsed instant alongside the display string
// so up-next resolution never has to re-parse Time; the two must stay
// in agreement (see WallClockLayout).
type SessionFeedItem struct {
	ID                 string   `json:"id"`
	Time               string   `json:"time"`
	StartMinutes       int      `json:"-"`
	ClientInitials     string   `json:"clientInitials"`
	ClientID           string   `json:"clientId"`
	SessionNumber      int      `json:"sessionNumber"`
	PresentingIssues   []string `json:"presentingIssues"`
	MHCPRemaining      int      `json:"mhcpRemaining"`
	MHCPTotal          int      `json:"mhcpTotal"`
	RelationshipMonths int      `json:"relationshipMonths"`
	Status             string   `json:"status"`
	IsUpNext           bool     `json:"isUpNext"`
	LocationType       string   `json:"locationType"`
}
