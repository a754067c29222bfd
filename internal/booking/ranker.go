package booking

import (
	"sort"
	"time"
)

// QueueItem is one row of the agent work queue: an active selection
// joined with its authoritative hold (the most recently created one,
// if any), the chosen option and the leg/project/artist metadata an
// agent needs to act without further lookups.
type QueueItem struct {
	SelectionID   string          `json:"selection_id"`
	Status        SelectionStatus `json:"status"`
	PassengerID   string          `json:"passenger_id"`
	PassengerName string          `json:"passenger_name"`
	OptionID      string          `json:"option_id"`
	LegID         string          `json:"leg_id"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	ProjectID     string          `json:"project_id"`
	ProjectName   string          `json:"project_name"`
	ArtistID      string          `json:"artist_id"`
	ArtistName    string          `json:"artist_name"`
	Airline       string          `json:"airline"`
	PriceCents    int64           `json:"price_cents"`
	Currency      string          `json:"currency"`
	DepartureDate *time.Time      `json:"departure_date,omitempty"`
	HoldExpiresAt *time.Time      `json:"hold_expires_at,omitempty"`
	Urgency       Urgency         `json:"urgency"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Rank orders queue items by how urgently an agent must act on them.
// The sort is a strict total order; each tier breaks ties with the
// next:
//
//  1. selections whose hold has already expired come first
//  2. then ascending by soonest hold expiry (items with a hold rank
//     before items without one)
//  3. then ascending by leg departure date, missing dates last
//  4. then ascending by selection creation time
//
// Rank also stamps the Urgency of every item against the supplied
// clock so the classification and the ordering agree on what "now"
// means.  The input slice is sorted in place and returned.
func Rank(now time.Time, items []QueueItem) []QueueItem {
	for i := range items {
		items[i].Urgency = ClassifyUrgency(now, items[i].HoldExpiresAt)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return queueLess(items[i], items[j])
	})
	return items
}

func queueLess(a, b QueueItem) bool {
	// Tier 1: expired holds surface above everything else.
	aExp := a.Urgency == UrgencyExpired
	bExp := b.Urgency == UrgencyExpired
	if aExp != bExp {
		return aExp
	}

	// Tier 2: soonest hold expiry first; a hold beats no hold.
	switch {
	case a.HoldExpiresAt != nil && b.HoldExpiresAt != nil:
		if !a.HoldExpiresAt.Equal(*b.HoldExpiresAt) {
			return a.HoldExpiresAt.Before(*b.HoldExpiresAt)
		}
	case a.HoldExpiresAt != nil:
		return true
	case b.HoldExpiresAt != nil:
		return false
	}

	// Tier 3: earlier travel first, unknown departure dates last.
	switch {
	case a.DepartureDate != nil && b.DepartureDate != nil:
		if !a.DepartureDate.Equal(*b.DepartureDate) {
			return a.DepartureDate.Before(*b.DepartureDate)
		}
	case a.DepartureDate != nil:
		return true
	case b.DepartureDate != nil:
		return false
	}

	// Tier 4: oldest selection first.
	return a.CreatedAt.Before(b.CreatedAt)
}
