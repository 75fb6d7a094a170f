package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gearshare/service-rental/internal/domain"
)

// User is a registered participant: an owner of items, a booker, or both.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user. Email uniqueness is enforced by the repository.
func NewUser(name, email string, now time.Time) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{id: id, name: name, email: email, createdAt: createdAt, updatedAt: updatedAt}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update applies a partial update. Nil fields are left unchanged.
func (u *User) Update(name, email *string, now time.Time) error {
	if name != nil && *name != "" {
		u.name = *name
	}
	if email != nil && *email != "" {
		if !strings.Contains(*email, "@") {
			return domain.NewValidationError("a valid email is required")
		}
		u.email = *email
	}
	u.updatedAt = now
	return nil
}
