package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/booking"
	"github.com/gearshare/service-rental/internal/domain/item"
	"github.com/gearshare/service-rental/internal/domain/request"
	"github.com/gearshare/service-rental/internal/domain/user"
	"github.com/gearshare/service-rental/internal/pagination"
)

// CreateItemRequest holds the data needed to list an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId"`
}

// PatchItemRequest holds a partial item update; nil fields stay unchanged.
type PatchItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingRefDTO is the compact last/next booking shown on an item.
type BookingRefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"created"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are populated only for the item's owner.
type ItemDTO struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"ownerId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	RequestID   *uuid.UUID     `json:"requestId,omitempty"`
	LastBooking *BookingRefDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingRefDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO   `json:"comments"`
}

// ItemService manages the item catalog: CRUD, search, comments, and the
// last/next booking lookup shown on item detail pages.
type ItemService struct {
	items    item.ItemRepository
	comments item.CommentRepository
	bookings booking.BookingRepository
	users    user.UserRepository
	requests request.ItemRequestRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	items item.ItemRepository,
	comments item.CommentRepository,
	bookings booking.BookingRepository,
	users user.UserRepository,
	requests request.ItemRequestRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		bookings: bookings,
		users:    users,
		requests: requests,
		logger:   logger,
		now:      time.Now,
	}
}

// Create lists a new item, optionally in response to an item request.
func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	it, err := item.NewItem(ownerID, req.Name, req.Description, available, req.RequestID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return s.Get(ctx, it.ID(), ownerID)
}

// Update applies a partial update. Only the owner may modify an item.
func (s *ItemService) Update(ctx context.Context, itemID, actingUserID uuid.UUID, patch PatchItemRequest) (*ItemDTO, error) {
	it, err := s.requireOwnedItem(ctx, itemID, actingUserID)
	if err != nil {
		return nil, err
	}
	it.Update(patch.Name, patch.Description, patch.Available, s.now())
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return s.Get(ctx, itemID, actingUserID)
}

// Delete removes an item. Only the owner may delete it.
func (s *ItemService) Delete(ctx context.Context, itemID, actingUserID uuid.UUID) error {
	if _, err := s.requireOwnedItem(ctx, itemID, actingUserID); err != nil {
		return err
	}
	return s.items.Delete(ctx, itemID)
}

// Get retrieves one item. Any registered user may view it; the last/next
// booking is resolved only for the owner.
func (s *ItemService) Get(ctx context.Context, itemID, viewerID uuid.UUID) (*ItemDTO, error) {
	if err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.toItemDTO(ctx, it, viewerID)
}

// ListByOwner lists the user's items with their last/next bookings and
// comments, served through the window adapter when paged.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, size *int) ([]ItemDTO, error) {
	pageReq, err := pagination.Parse(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	var list []*item.Item
	if pageReq == nil {
		list, err = s.items.ListByOwner(ctx, ownerID)
	} else {
		list, err = pagination.FetchWindow(*pageReq, func(page, size int) ([]*item.Item, error) {
			return s.items.ListByOwnerPage(ctx, ownerID, page, size)
		})
	}
	if err != nil {
		return nil, err
	}
	return s.toItemDTOs(ctx, list, ownerID)
}

// Search finds available items matching the text. An empty query returns an
// empty list, not an error.
func (s *ItemService) Search(ctx context.Context, viewerID uuid.UUID, text string, from, size *int) ([]ItemDTO, error) {
	pageReq, err := pagination.Parse(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}
	if text == "" {
		return []ItemDTO{}, nil
	}

	var list []*item.Item
	if pageReq == nil {
		list, err = s.items.Search(ctx, text)
	} else {
		list, err = pagination.FetchWindow(*pageReq, func(page, size int) ([]*item.Item, error) {
			return s.items.SearchPage(ctx, text, page, size)
		})
	}
	if err != nil {
		return nil, err
	}
	return s.toItemDTOs(ctx, list, viewerID)
}

// AddComment records feedback on an item. Only users who had an approved
// booking of the item that has already started may comment.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID uuid.UUID, text string) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.now()
	rented, err := s.bookings.HasApprovedStarted(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, domain.NewValidationError(
			"user " + authorID.String() + " has not rented item " + itemID.String() + " and may not comment on it")
	}

	c, err := item.NewComment(itemID, authorID, author.Name(), text, now)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := toCommentDTO(c)
	return &dto, nil
}

// resolveAdjacent finds the item's "last" and "next" approved bookings at one
// instant. Rule: "last" is the approved booking currently occupying the item
// when one exists, otherwise the most recently ended approved booking.
// Waiting, rejected and canceled bookings are never surfaced. Absence of
// either is a normal outcome.
func (s *ItemService) resolveAdjacent(ctx context.Context, it *item.Item, ownerID uuid.UUID, now time.Time) (last, next *booking.Booking, err error) {
	last, err = s.bookings.CurrentlyRunning(ctx, it.ID(), ownerID, now)
	if err != nil {
		return nil, nil, err
	}
	if last == nil {
		last, err = s.bookings.LastFinished(ctx, it.ID(), ownerID, now)
		if err != nil {
			return nil, nil, err
		}
	}
	next, err = s.bookings.NextUpcoming(ctx, it.ID(), ownerID, now)
	if err != nil {
		return nil, nil, err
	}
	return last, next, nil
}

func (s *ItemService) requireOwnedItem(ctx context.Context, itemID, actingUserID uuid.UUID) (*item.Item, error) {
	if err := s.requireUser(ctx, actingUserID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actingUserID) {
		return nil, domain.NewForbiddenError("item " + itemID.String() + " does not belong to user " + actingUserID.String())
	}
	return it, nil
}

func (s *ItemService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("user", userID.String())
	}
	return nil
}

func (s *ItemService) toItemDTO(ctx context.Context, it *item.Item, viewerID uuid.UUID) (*ItemDTO, error) {
	dto := ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		Comments:    []CommentDTO{},
	}

	if it.IsOwnedBy(viewerID) {
		last, next, err := s.resolveAdjacent(ctx, it, viewerID, s.now())
		if err != nil {
			return nil, err
		}
		dto.LastBooking = toBookingRefDTO(last)
		dto.NextBooking = toBookingRefDTO(next)
	}

	comments, err := s.comments.ListByItem(ctx, it.ID())
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		dto.Comments = append(dto.Comments, toCommentDTO(c))
	}
	return &dto, nil
}

func (s *ItemService) toItemDTOs(ctx context.Context, list []*item.Item, viewerID uuid.UUID) ([]ItemDTO, error) {
	dtos := make([]ItemDTO, 0, len(list))
	for _, it := range list {
		dto, err := s.toItemDTO(ctx, it, viewerID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func toBookingRefDTO(bk *booking.Booking) *BookingRefDTO {
	if bk == nil {
		return nil
	}
	return &BookingRefDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    bk.Start(),
		End:      bk.End(),
	}
}

func toCommentDTO(c *item.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		CreatedAt:  c.CreatedAt(),
	}
}
