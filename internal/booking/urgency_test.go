package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUrgency(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	in := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      Urgency
	}{
		{"no hold", nil, UrgencyNone},
		{"expires in 1h", in(time.Hour), UrgencyHigh},
		{"expires in 4h", in(4 * time.Hour), UrgencyMedium},
		{"expires in 10h", in(10 * time.Hour), UrgencyLow},
		{"expired an hour ago", in(-time.Hour), UrgencyExpired},
		{"expires exactly now", in(0), UrgencyExpired},
		{"exactly on the high boundary", in(2 * time.Hour), UrgencyHigh},
		{"exactly on the medium boundary", in(6 * time.Hour), UrgencyMedium},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyUrgency(now, tc.expiresAt))
		})
	}
}

func TestHoldExpiry(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	exp, err := HoldExpiry(now, 24)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), exp)

	exp, err = HoldExpiry(now, 72)
	require.NoError(t, err)
	assert.Equal(t, now.Add(72*time.Hour), exp)

	for _, hours := range []int{0, -1, 73, 1000} {
		_, err := HoldExpiry(now, hours)
		assert.Error(t, err, "hours=%d must be rejected", hours)
		assert.IsType(t, ErrInvalidHoldHours{}, err)
	}
}
