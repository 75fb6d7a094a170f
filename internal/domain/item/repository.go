package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the persistence contract for catalog items. Owner
// listings and search results are ordered by creation time ascending.
type ItemRepository interface {
	// Create persists a new item.
	Create(ctx context.Context, it *Item) error

	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, it *Item) error

	// Delete removes an item.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByOwner retrieves every item of the owner, unpaged.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// ListByOwnerPage retrieves one native page of the owner's items.
	ListByOwnerPage(ctx context.Context, ownerID uuid.UUID, page, size int) ([]*Item, error)

	// Search finds available items whose name or description contains the
	// text, case-insensitively, unpaged.
	Search(ctx context.Context, text string) ([]*Item, error)

	// SearchPage retrieves one native page of search results.
	SearchPage(ctx context.Context, text string, page, size int) ([]*Item, error)

	// ListByRequest retrieves items listed in response to an item request.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*Item, error)
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, c *Comment) error

	// ListByItem retrieves the comments on an item, oldest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)
}
