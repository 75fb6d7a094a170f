package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for users. Create and
// Update report a conflict when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a user with the given id is registered, without
	// loading the full record.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
