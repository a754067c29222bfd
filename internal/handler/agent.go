package handler

import (
	"context"
	"log"

	"github.com/tourwire/flight-desk/internal/queue"
)

// AgentHandler groups the stores behind the agent-facing workflow:
// the prioritized queue, group derivation, holds, ticketing and
// selection transitions.  JWT authentication and role enforcement
// (AGENT or ADMIN) happen in middleware before any method here runs.
//
// Notify and BustQueueCache are optional collaborators.  Both are
// best-effort: their failures are logged and swallowed so a broker or
// Redis hiccup can never roll back a completed write.
type AgentHandler struct {
	Projects   ProjectStore
	Legs       LegStore
	Groups     GroupStore
	Options    OptionStore
	Selections SelectionStore
	Holds      HoldStore
	Ticketing  TicketingStore
	Passengers PassengerStore

	Notify         NotifyFunc
	BustQueueCache func(ctx context.Context)
}

// NewAgentHandler constructs an AgentHandler.  The store dependencies
// must be non-nil; Notify and BustQueueCache may be left nil to
// disable notifications and cache invalidation.
func NewAgentHandler(projects ProjectStore, legs LegStore, groups GroupStore, options OptionStore, selections SelectionStore, holds HoldStore, ticketing TicketingStore, passengers PassengerStore) *AgentHandler {
	if projects == nil || legs == nil || groups == nil || options == nil || selections == nil || holds == nil || ticketing == nil || passengers == nil {
		panic("nil store passed to NewAgentHandler")
	}
	return &AgentHandler{
		Projects:   projects,
		Legs:       legs,
		Groups:     groups,
		Options:    options,
		Selections: selections,
		Holds:      holds,
		Ticketing:  ticketing,
		Passengers: passengers,
	}
}

// notify publishes a notification request and logs any failure.
func (h *AgentHandler) notify(ctx context.Context, ev queue.NotificationEvent) {
	if h.Notify == nil {
		return
	}
	h.correlate(ctx, &ev)
	if err := h.Notify(ctx, ev); err != nil {
		log.Printf("agent: notification %s failed (ignored): %v", ev.Type, err)
	}
}

// correlate fills the project and artist ids an event is missing so
// downstream consumers can route it without querying the primary
// database.  The lookups are best-effort: a failed read leaves the
// fields empty rather than failing a request whose write already
// committed.
func (h *AgentHandler) correlate(ctx context.Context, ev *queue.NotificationEvent) {
	if ev.ProjectID == "" && ev.LegID != "" {
		if leg, err := h.Legs.GetByID(ctx, ev.LegID); err == nil {
			ev.ProjectID = leg.ProjectID
		}
	}
	if ev.ArtistID == "" && ev.ProjectID != "" {
		if proj, err := h.Projects.GetByID(ctx, ev.ProjectID); err == nil {
			ev.ArtistID = proj.ArtistID
		}
	}
}

// bustCache invalidates the cached queue view after a mutation.
func (h *AgentHandler) bustCache(ctx context.Context) {
	if h.BustQueueCache != nil {
		h.BustQueueCache(ctx)
	}
}
