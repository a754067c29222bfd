package booking

import "time"

// Urgency classifies how soon an agent must act on a selection before
// its hold lapses.  It is a pure function of the clock and the hold's
// expiry timestamp; holds are never swept by a background process, so
// an expired hold is simply a row whose expiry lies in the past.
type Urgency string

const (
	UrgencyNone    Urgency = "NONE"    // selection has no hold at all
	UrgencyLow     Urgency = "LOW"     // more than 6h remaining
	UrgencyMedium  Urgency = "MEDIUM"  // 6h or less remaining
	UrgencyHigh    Urgency = "HIGH"    // 2h or less remaining
	UrgencyExpired Urgency = "EXPIRED" // hold has lapsed
)

const (
	highWindow   = 2 * time.Hour
	mediumWindow = 6 * time.Hour
)

// ClassifyUrgency maps a hold expiry to its urgency at the given
// instant.  A nil expiry means the selection carries no hold and
// classifies as UrgencyNone.  Comparisons are inclusive on the
// boundary: a hold expiring exactly now is already expired, and one
// with exactly two hours left is high.
func ClassifyUrgency(now time.Time, expiresAt *time.Time) Urgency {
	if expiresAt == nil {
		return UrgencyNone
	}
	remaining := expiresAt.Sub(now)
	switch {
	case remaining <= 0:
		return UrgencyExpired
	case remaining <= highWindow:
		return UrgencyHigh
	case remaining <= mediumWindow:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Hold hour bounds for placeHold.  Values outside the range are
// rejected rather than clamped silently so the caller learns about the
// bad input.
const (
	MinHoldHours     = 1
	MaxHoldHours     = 72
	DefaultHoldHours = 24
)

// HoldExpiry computes the expiry timestamp for a new hold.  It returns
// an ErrInvalidHoldHours when hours falls outside [MinHoldHours,
// MaxHoldHours].  Zero is out of range; callers that want the 24h
// default must pass DefaultHoldHours explicitly when the field was
// absent from the request.
func HoldExpiry(now time.Time, hours int) (time.Time, error) {
	if hours < MinHoldHours || hours > MaxHoldHours {
		return time.Time{}, ErrInvalidHoldHours{Hours: hours}
	}
	return now.Add(time.Duration(hours) * time.Hour).UTC(), nil
}

// ErrInvalidHoldHours reports a placeHold duration outside the allowed
// range.
type ErrInvalidHoldHours struct {
	Hours int
}

func (e ErrInvalidHoldHours) Error() string {
	return "hold hours must be between 1 and 72"
}
