package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/booking"
	"github.com/gearshare/service-rental/internal/domain/item"
	"github.com/gearshare/service-rental/internal/domain/user"
	"github.com/gearshare/service-rental/internal/events"
	"github.com/gearshare/service-rental/internal/metrics"
	"github.com/gearshare/service-rental/internal/pagination"
)

// EventPublisher is the messaging surface the services need.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event events.Event) error
}

// CreateBookingRequest holds the data needed to request a booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"itemId"`
	BookerID  uuid.UUID `json:"bookerId"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingService orchestrates the booking lifecycle: creation guards, the
// owner's approve/reject decision, cancellation, and the temporal listing
// queries.
type BookingService struct {
	bookings booking.BookingRepository
	items    item.ItemRepository
	users    user.UserRepository
	producer EventPublisher
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings booking.BookingRepository,
	items item.ItemRepository,
	users user.UserRepository,
	producer EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Create requests a booking of an item. The requester must exist, the item
// must exist and be available, and owners cannot book their own items.
// Overlap with other bookings of the same item is deliberately not checked.
func (s *BookingService) Create(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	now := s.now()

	bk, err := booking.NewBooking(req.ItemID, bookerID, req.Start, req.End, now)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewNotAvailableError("item " + it.ID().String() + " is not available for booking")
	}
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewForbiddenError("owners cannot book their own items")
	}

	if err := s.bookings.Create(ctx, bk); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.publishBookingEvent(ctx, events.BookingCreated, bk, it.OwnerID())

	result := toBookingDTO(bk)
	return &result, nil
}

// Approve resolves a waiting booking. Only the item's owner may decide, and
// only while the booking is still waiting; the status write is a
// compare-and-swap so concurrent decisions cannot both win.
func (s *BookingService) Approve(ctx context.Context, bookingID, actingUserID uuid.UUID, approved bool) (*BookingDTO, error) {
	now := s.now()

	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actingUserID) {
		return nil, domain.NewForbiddenError("only the item's owner may decide booking " + bookingID.String())
	}
	if err := bk.Decide(approved, now); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, booking.StatusWaiting, bk.Status(), now); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		if approved {
			s.metrics.BookingsApproved.Inc()
		} else {
			s.metrics.BookingsRejected.Inc()
		}
	}
	eventType := events.BookingApproved
	if !approved {
		eventType = events.BookingRejected
	}
	s.publishBookingEvent(ctx, eventType, bk, it.OwnerID())

	result := toBookingDTO(bk)
	return &result, nil
}

// Cancel withdraws a waiting booking. Only the booker may cancel.
func (s *BookingService) Cancel(ctx context.Context, bookingID, actingUserID uuid.UUID) (*BookingDTO, error) {
	now := s.now()

	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(actingUserID) {
		return nil, domain.NewForbiddenError("only the booker may cancel booking " + bookingID.String())
	}
	if err := bk.Cancel(now); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, booking.StatusWaiting, bk.Status(), now); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCanceled.Inc()
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err == nil {
		s.publishBookingEvent(ctx, events.BookingCanceled, bk, it.OwnerID())
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// Get retrieves a booking for display. The viewer must be the booker or the
// item's owner.
func (s *BookingService) Get(ctx context.Context, bookingID, viewerID uuid.UUID) (*BookingDTO, error) {
	if err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(viewerID) && !it.IsOwnedBy(viewerID) {
		return nil, domain.NewForbiddenError("user " + viewerID.String() + " may not view booking " + bookingID.String())
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListByBooker lists the user's own bookings filtered by a state token,
// ordered by start descending.
func (s *BookingService) ListByBooker(ctx context.Context, userID uuid.UUID, stateToken string, from, size *int) ([]BookingDTO, error) {
	return s.list(ctx, booking.RoleBooker, userID, stateToken, from, size)
}

// ListByOwner lists the bookings of every item the user owns, filtered by a
// state token, ordered by start descending.
func (s *BookingService) ListByOwner(ctx context.Context, userID uuid.UUID, stateToken string, from, size *int) ([]BookingDTO, error) {
	return s.list(ctx, booking.RoleOwner, userID, stateToken, from, size)
}

func (s *BookingService) list(ctx context.Context, role booking.Role, userID uuid.UUID, stateToken string, from, size *int) ([]BookingDTO, error) {
	// Token and pagination problems must surface before any query runs.
	state, err := booking.ParseBookingState(stateToken)
	if err != nil {
		return nil, err
	}
	pageReq, err := pagination.Parse(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ListRequests.WithLabelValues(string(role), string(state)).Inc()
	}

	// One instant for every time comparison in this call.
	filter := booking.ListFilter{
		Role:      role,
		SubjectID: userID,
		State:     state,
		Now:       s.now(),
	}

	var list []*booking.Booking
	if pageReq == nil {
		list, err = s.bookings.List(ctx, filter)
	} else {
		list, err = pagination.FetchWindow(*pageReq, func(page, size int) ([]*booking.Booking, error) {
			return s.bookings.ListPage(ctx, filter, page, size)
		})
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(list))
	for i, bk := range list {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, nil
}

func (s *BookingService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("user", userID.String())
	}
	return nil
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *booking.Booking, ownerID uuid.UUID) {
	if s.producer == nil {
		return
	}
	evt, err := events.NewEvent("service-rental", eventType, events.BookingEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Status:     bk.Status().String(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.Error("failed to build booking event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.Publish(ctx, events.TopicBookingEvents, bk.ID().String(), evt); err != nil {
		s.logger.Error("failed to publish booking event",
			zap.String("event_type", eventType),
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Status:    bk.Status().String(),
		Start:     bk.Start(),
		End:       bk.End(),
		CreatedAt: bk.CreatedAt(),
	}
}
