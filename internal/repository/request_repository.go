package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/request"
)

// ItemRequestModel is the GORM model for the item_requests table.
type ItemRequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null;size:2000"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemRequestModel) TableName() string {
	return "item_requests"
}

// GormItemRequestRepository is the GORM-based implementation of
// ItemRequestRepository.
type GormItemRequestRepository struct {
	db *gorm.DB
}

// NewGormItemRequestRepository creates a new GormItemRequestRepository.
func NewGormItemRequestRepository(db *gorm.DB) *GormItemRequestRepository {
	return &GormItemRequestRepository{db: db}
}

// Create persists a new item request.
func (r *GormItemRequestRepository) Create(ctx context.Context, req *request.ItemRequest) error {
	model := &ItemRequestModel{
		ID:          req.ID(),
		RequesterID: req.RequesterID(),
		Description: req.Description(),
		CreatedAt:   req.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save item request: %w", err)
	}
	return nil
}

// FindByID retrieves an item request by its unique identifier.
func (r *GormItemRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.ItemRequest, error) {
	var model ItemRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("item request", id.String())
		}
		return nil, fmt.Errorf("failed to find item request by ID: %w", err)
	}
	return toDomainRequest(&model), nil
}

// ListByRequester retrieves the user's own requests, newest first.
func (r *GormItemRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*request.ItemRequest, error) {
	var models []ItemRequestModel
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list own item requests: %w", err)
	}
	return toDomainRequests(models), nil
}

// ListByOthers retrieves requests posted by everyone except the user, newest
// first.
func (r *GormItemRequestRepository) ListByOthers(ctx context.Context, requesterID uuid.UUID) ([]*request.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.othersQuery(ctx, requesterID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	return toDomainRequests(models), nil
}

// ListByOthersPage retrieves one zero-based native page of other users'
// requests.
func (r *GormItemRequestRepository) ListByOthersPage(ctx context.Context, requesterID uuid.UUID, page, size int) ([]*request.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.othersQuery(ctx, requesterID).Offset(page * size).Limit(size).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list item request page: %w", err)
	}
	return toDomainRequests(models), nil
}

func (r *GormItemRequestRepository) othersQuery(ctx context.Context, requesterID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ItemRequestModel{}).
		Where("requester_id <> ?", requesterID).
		Order("created_at DESC")
}

// --- Conversion helpers ---

func toDomainRequest(m *ItemRequestModel) *request.ItemRequest {
	return request.Reconstruct(m.ID, m.RequesterID, m.Description, m.CreatedAt)
}

func toDomainRequests(models []ItemRequestModel) []*request.ItemRequest {
	requests := make([]*request.ItemRequest, len(models))
	for i, m := range models {
		requests[i] = toDomainRequest(&m)
	}
	return requests
}
