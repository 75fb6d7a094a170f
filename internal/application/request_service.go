package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/item"
	"github.com/gearshare/service-rental/internal/domain/request"
	"github.com/gearshare/service-rental/internal/domain/user"
	"github.com/gearshare/service-rental/internal/pagination"
)

// CreateItemRequestRequest holds a new item-request posting.
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// ItemForRequestDTO is an item listed in response to a request.
type ItemForRequestDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Available bool      `json:"available"`
}

// ItemRequestDTO is the response representation of an item request together
// with the items already listed in response to it.
type ItemRequestDTO struct {
	ID          uuid.UUID           `json:"id"`
	RequesterID uuid.UUID           `json:"requesterId"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"created"`
	Items       []ItemForRequestDTO `json:"items"`
}

// RequestService manages the item-request board: postings asking for items
// that are not in the catalog yet.
type RequestService struct {
	requests request.ItemRequestRepository
	items    item.ItemRepository
	users    user.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests request.ItemRequestRepository,
	items item.ItemRepository,
	users user.UserRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// Create posts a new item request.
func (s *RequestService) Create(ctx context.Context, requesterID uuid.UUID, req CreateItemRequestRequest) (*ItemRequestDTO, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	r, err := request.NewItemRequest(requesterID, req.Description, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	return s.toRequestDTO(ctx, r)
}

// Get retrieves one item request with its responses.
func (s *RequestService) Get(ctx context.Context, requestID, viewerID uuid.UUID) (*ItemRequestDTO, error) {
	if err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTO(ctx, r)
}

// ListOwn lists the user's own requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requesterID uuid.UUID) ([]ItemRequestDTO, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	list, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, list)
}

// ListOthers lists requests posted by other users, newest first, served
// through the window adapter when paged.
func (s *RequestService) ListOthers(ctx context.Context, viewerID uuid.UUID, from, size *int) ([]ItemRequestDTO, error) {
	pageReq, err := pagination.Parse(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, viewerID); err != nil {
		return nil, err
	}

	var list []*request.ItemRequest
	if pageReq == nil {
		list, err = s.requests.ListByOthers(ctx, viewerID)
	} else {
		list, err = pagination.FetchWindow(*pageReq, func(page, size int) ([]*request.ItemRequest, error) {
			return s.requests.ListByOthersPage(ctx, viewerID, page, size)
		})
	}
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, list)
}

func (s *RequestService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("user", userID.String())
	}
	return nil
}

func (s *RequestService) toRequestDTO(ctx context.Context, r *request.ItemRequest) (*ItemRequestDTO, error) {
	dto := ItemRequestDTO{
		ID:          r.ID(),
		RequesterID: r.RequesterID(),
		Description: r.Description(),
		CreatedAt:   r.CreatedAt(),
		Items:       []ItemForRequestDTO{},
	}
	answers, err := s.items.ListByRequest(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	for _, it := range answers {
		dto.Items = append(dto.Items, ItemForRequestDTO{
			ID:        it.ID(),
			Name:      it.Name(),
			OwnerID:   it.OwnerID(),
			Available: it.Available(),
		})
	}
	return &dto, nil
}

func (s *RequestService) toRequestDTOs(ctx context.Context, list []*request.ItemRequest) ([]ItemRequestDTO, error) {
	dtos := make([]ItemRequestDTO, 0, len(list))
	for _, r := range list {
		dto, err := s.toRequestDTO(ctx, r)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}
