package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/item"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Name        string     `gorm:"not null;size:255"`
	Description string     `gorm:"not null;size:2000"`
	Available   bool       `gorm:"not null"`
	RequestID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of ItemRepository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Create persists a new item.
func (r *GormItemRepository) Create(ctx context.Context, it *item.Item) error {
	if err := r.db.WithContext(ctx).Create(toItemModel(it)).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

// FindByID retrieves an item by its unique identifier.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("item", id.String())
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model), nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, it *item.Item) error {
	model := toItemModel(it)
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"available":   model.Available,
			"request_id":  model.RequestID,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("item", it.ID().String())
	}
	return nil
}

// Delete removes an item.
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&ItemModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ListByOwner retrieves every item of the owner, oldest first.
func (r *GormItemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*item.Item, error) {
	var models []ItemModel
	if err := r.ownerQuery(ctx, ownerID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list owner items: %w", err)
	}
	return toDomainItems(models), nil
}

// ListByOwnerPage retrieves one zero-based native page of the owner's items.
func (r *GormItemRepository) ListByOwnerPage(ctx context.Context, ownerID uuid.UUID, page, size int) ([]*item.Item, error) {
	var models []ItemModel
	if err := r.ownerQuery(ctx, ownerID).Offset(page * size).Limit(size).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list owner item page: %w", err)
	}
	return toDomainItems(models), nil
}

// Search finds available items matching the text in name or description,
// case-insensitively.
func (r *GormItemRepository) Search(ctx context.Context, text string) ([]*item.Item, error) {
	var models []ItemModel
	if err := r.searchQuery(ctx, text).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

// SearchPage retrieves one zero-based native page of search results.
func (r *GormItemRepository) SearchPage(ctx context.Context, text string, page, size int) ([]*item.Item, error) {
	var models []ItemModel
	if err := r.searchQuery(ctx, text).Offset(page * size).Limit(size).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search item page: %w", err)
	}
	return toDomainItems(models), nil
}

// ListByRequest retrieves the items listed in response to an item request.
func (r *GormItemRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*item.Item, error) {
	var models []ItemModel
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items for request: %w", err)
	}
	return toDomainItems(models), nil
}

func (r *GormItemRepository) ownerQuery(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC")
}

func (r *GormItemRepository) searchQuery(ctx context.Context, text string) *gorm.DB {
	pattern := "%" + text + "%"
	return r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("(name ILIKE ? OR description ILIKE ?) AND available = true", pattern, pattern).
		Order("created_at ASC")
}

// --- Conversion helpers ---

func toItemModel(it *item.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toDomainItem(m *ItemModel) *item.Item {
	return item.Reconstruct(
		m.ID, m.OwnerID,
		m.Name, m.Description,
		m.Available,
		m.RequestID,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainItems(models []ItemModel) []*item.Item {
	items := make([]*item.Item, len(models))
	for i, m := range models {
		items[i] = toDomainItem(&m)
	}
	return items
}
