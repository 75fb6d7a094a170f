package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role selects whose bookings a listing is about: the user who requested them
// or the owner of the booked items.
type Role string

const (
	RoleBooker Role = "booker"
	RoleOwner  Role = "owner"
)

// ListFilter is the single predicate handed to the query source for a listing
// call. Now is captured once per logical call so every time comparison within
// the call sees the same instant.
type ListFilter struct {
	Role      Role
	SubjectID uuid.UUID
	State     BookingState
	Now       time.Time
}

// BookingRepository defines the persistence contract for booking aggregates.
// All listing results are ordered by start descending.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// UpdateStatus transitions a booking's status with a compare-and-swap:
	// the update applies only while the stored status still equals from, and
	// reports a conflict otherwise. Exactly one of two racing decisions wins.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to BookingStatus, updatedAt time.Time) error

	// List retrieves every booking matching the filter, unpaged.
	List(ctx context.Context, f ListFilter) ([]*Booking, error)

	// ListPage retrieves one native page of exactly size rows (fewer when the
	// data is exhausted) for the filter. Pages are zero-based.
	ListPage(ctx context.Context, f ListFilter, page, size int) ([]*Booking, error)

	// LastFinished finds the approved booking on the item with the greatest
	// end among those ending at or before now. Returns nil when none exists.
	LastFinished(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*Booking, error)

	// CurrentlyRunning finds the approved booking on the item whose interval
	// spans now. Returns nil when none exists.
	CurrentlyRunning(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*Booking, error)

	// NextUpcoming finds the approved booking on the item with the smallest
	// start among those starting after now. Returns nil when none exists.
	NextUpcoming(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*Booking, error)

	// HasApprovedStarted reports whether the user has an approved booking of
	// the item that started before now. Gates commenting.
	HasApprovedStarted(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error)
}
