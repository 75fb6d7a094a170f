package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gearshare/service-rental/internal/domain"
)

// Booking is the aggregate root for a time-boxed rental of an item.
type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	start     time.Time
	end       time.Time
	status    BookingStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking in StatusWaiting. The interval must not be
// degenerate: start strictly before end.
func NewBooking(itemID, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if !start.Before(end) {
		return nil, domain.NewValidationError("booking end must be after booking start")
	}

	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status BookingStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ItemID() uuid.UUID     { return b.itemID }
func (b *Booking) BookerID() uuid.UUID   { return b.bookerID }
func (b *Booking) Start() time.Time      { return b.start }
func (b *Booking) End() time.Time        { return b.end }
func (b *Booking) Status() BookingStatus { return b.status }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

// --- Behavior ---

// Decide resolves a waiting booking: approved=true moves it to StatusApproved,
// approved=false to StatusRejected. Deciding a booking that is no longer
// waiting is a validation failure, so a booking cannot be re-approved.
func (b *Booking) Decide(approved bool, now time.Time) error {
	target := StatusApproved
	if !approved {
		target = StatusRejected
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewValidationError(
			fmt.Sprintf("cannot decide a booking with status %s", b.status))
	}
	b.status = target
	b.updatedAt = now
	return nil
}

// Cancel withdraws a waiting booking. StatusCanceled is terminal.
func (b *Booking) Cancel(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCanceled) {
		return domain.NewValidationError(
			fmt.Sprintf("cannot cancel a booking with status %s", b.status))
	}
	b.status = StatusCanceled
	b.updatedAt = now
	return nil
}

// IsBookedBy reports whether the booking was requested by the given user.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}

// Spans reports whether the booking interval covers the given instant,
// i.e. start <= t < end.
func (b *Booking) Spans(t time.Time) bool {
	return !b.start.After(t) && b.end.After(t)
}
