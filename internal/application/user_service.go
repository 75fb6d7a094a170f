package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gearshare/service-rental/internal/domain/user"
)

// CreateUserRequest holds a new user registration.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// PatchUserRequest holds a partial user update; nil fields stay unchanged.
type PatchUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserService manages user registration and profile updates.
type UserService struct {
	users  user.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(users user.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger, now: time.Now}
}

// Create registers a user. A taken email surfaces as a conflict.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := user.NewUser(req.Name, req.Email, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// Get retrieves one user.
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// GetAll retrieves every registered user.
func (s *UserService) GetAll(ctx context.Context) ([]UserDTO, error) {
	list, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(list))
	for i, u := range list {
		dtos[i] = toUserDTO(u)
	}
	return dtos, nil
}

// Update applies a partial profile update.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, patch PatchUserRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.Update(patch.Name, patch.Email, s.now()); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}
