package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankHoldBeatsEarlierDeparture(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	holdExp := now.Add(30 * time.Minute)
	farDeparture := now.Add(5 * 24 * time.Hour)
	soonDeparture := now.Add(24 * time.Hour)

	a := QueueItem{SelectionID: "a", HoldExpiresAt: &holdExp, DepartureDate: &farDeparture}
	b := QueueItem{SelectionID: "b", DepartureDate: &soonDeparture}

	ranked := Rank(now, []QueueItem{b, a})
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].SelectionID,
		"a selection with an expiring hold outranks one departing sooner but unheld")
	assert.Equal(t, UrgencyHigh, ranked[0].Urgency)
	assert.Equal(t, UrgencyNone, ranked[1].Urgency)
}

func TestRankExpiredFirst(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	closeCall := now.Add(10 * time.Minute)

	a := QueueItem{SelectionID: "a", HoldExpiresAt: &past}
	c := QueueItem{SelectionID: "c", HoldExpiresAt: &closeCall}

	ranked := Rank(now, []QueueItem{c, a})
	assert.Equal(t, "a", ranked[0].SelectionID,
		"an already-expired hold outranks even a hold about to expire")
	assert.Equal(t, UrgencyExpired, ranked[0].Urgency)
}

func TestRankMissingDepartureSortsLast(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	dep := now.Add(48 * time.Hour)

	dated := QueueItem{SelectionID: "dated", DepartureDate: &dep}
	undated := QueueItem{SelectionID: "undated"}

	ranked := Rank(now, []QueueItem{undated, dated})
	assert.Equal(t, "dated", ranked[0].SelectionID)
}

func TestRankCreationTimeTiebreak(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	dep := now.Add(72 * time.Hour)

	old := QueueItem{SelectionID: "old", DepartureDate: &dep, CreatedAt: now.Add(-3 * time.Hour)}
	young := QueueItem{SelectionID: "young", DepartureDate: &dep, CreatedAt: now.Add(-time.Hour)}

	ranked := Rank(now, []QueueItem{young, old})
	assert.Equal(t, "old", ranked[0].SelectionID, "oldest selection wins the final tiebreak")
}

func TestRankIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	exp1 := now.Add(time.Hour)
	exp2 := now.Add(3 * time.Hour)
	dep := now.Add(24 * time.Hour)

	items := []QueueItem{
		{SelectionID: "1", HoldExpiresAt: &exp2},
		{SelectionID: "2", HoldExpiresAt: &exp1},
		{SelectionID: "3", DepartureDate: &dep, CreatedAt: now.Add(-time.Minute)},
		{SelectionID: "4", CreatedAt: now.Add(-2 * time.Minute)},
	}

	first := Rank(now, append([]QueueItem(nil), items...))
	second := Rank(now, append([]QueueItem(nil), items...))
	assert.Equal(t, first, second)

	order := make([]string, 0, len(first))
	for _, it := range first {
		order = append(order, it.SelectionID)
	}
	assert.Equal(t, []string{"2", "1", "3", "4"}, order)
}
