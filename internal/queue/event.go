// Package queue defines the notification records exchanged over the
// message broker.  The core only constructs and publishes these
// records; rendering and delivery to humans belong to downstream
// consumers.
package queue

// Notification severities.
const (
	SeverityInfo    = "INFO"
	SeverityWarning = "WARNING"
)

// Notification event types.
const (
	TypeHoldPlaced         = "hold.placed"
	TypeTicketingCompleted = "ticketing.completed"
	TypeSelectionReverted  = "selection.reverted"
)

// NotificationEvent is a fire-and-forget notification request.  It
// carries enough correlation (leg, project, artist) for downstream
// consumers to route and render it without querying the primary
// database.
type NotificationEvent struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	LegID       string `json:"leg_id,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	ArtistID    string `json:"artist_id,omitempty"`
	PassengerID string `json:"passenger_id,omitempty"`
	OptionID    string `json:"option_id,omitempty"`
	EmittedAt   string `json:"emitted_at"` // RFC3339, UTC
}
