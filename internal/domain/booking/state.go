package booking

import (
	"time"

	"github.com/gearshare/service-rental/internal/domain"
)

// BookingState is a query-only classification of bookings relative to a fixed
// instant and/or their persisted status. It selects a retrieval predicate and
// is never stored.
type BookingState string

const (
	// StateAll matches every booking of the subject.
	StateAll BookingState = "ALL"
	// StateCurrent matches bookings whose interval spans now (start <= now < end).
	StateCurrent BookingState = "CURRENT"
	// StatePast matches bookings that ended before now.
	StatePast BookingState = "PAST"
	// StateFuture matches bookings that start after now.
	StateFuture BookingState = "FUTURE"
	// StateWaiting matches bookings with StatusWaiting, regardless of time.
	StateWaiting BookingState = "WAITING"
	// StateRejected matches bookings with StatusRejected, regardless of time.
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState validates a state token. Tokens are case-sensitive; an
// unknown token is a validation failure naming the token, never a silent
// fallback.
func ParseBookingState(s string) (BookingState, error) {
	switch state := BookingState(s); state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return state, nil
	default:
		return "", domain.NewValidationError("Unknown state: " + s)
	}
}

// Matches reports whether a booking belongs to this state's bucket at the
// given instant. Membership is a pure function of (start, end, status, now).
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.Spans(now)
	case StatePast:
		return b.End().Before(now)
	case StateFuture:
		return b.Start().After(now)
	case StateWaiting:
		return b.Status() == StatusWaiting
	case StateRejected:
		return b.Status() == StatusRejected
	default:
		return false
	}
}
