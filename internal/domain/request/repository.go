package request

import (
	"context"

	"github.com/google/uuid"
)

// ItemRequestRepository defines the persistence contract for the item-request
// board. Listings are ordered by creation time descending.
type ItemRequestRepository interface {
	Create(ctx context.Context, r *ItemRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// ListByRequester retrieves the user's own requests.
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// ListByOthers retrieves requests posted by everyone except the user,
	// unpaged.
	ListByOthers(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// ListByOthersPage retrieves one native page of other users' requests.
	ListByOthersPage(ctx context.Context, requesterID uuid.UUID, page, size int) ([]*ItemRequest, error)
}
