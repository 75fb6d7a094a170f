package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;size:20;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create persists a new booking.
func (r *GormBookingRepository) Create(ctx context.Context, bk *booking.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// UpdateStatus transitions the status with a compare-and-swap. A lost race
// (zero rows updated) surfaces as a conflict.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.BookingStatus, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking " + id.String() + " was decided concurrently")
	}
	return nil
}

// List retrieves every booking matching the filter, ordered by start
// descending.
func (r *GormBookingRepository) List(ctx context.Context, f booking.ListFilter) ([]*booking.Booking, error) {
	var models []BookingModel
	if err := r.listQuery(ctx, f).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toDomainBookings(models)
}

// ListPage retrieves one zero-based native page of exactly size rows.
func (r *GormBookingRepository) ListPage(ctx context.Context, f booking.ListFilter, page, size int) ([]*booking.Booking, error) {
	var models []BookingModel
	if err := r.listQuery(ctx, f).Offset(page * size).Limit(size).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list booking page: %w", err)
	}
	return toDomainBookings(models)
}

// listQuery maps the filter onto one SQL predicate. The state dispatch lives
// here and nowhere else; callers never see which predicate was chosen.
func (r *GormBookingRepository) listQuery(ctx context.Context, f booking.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&BookingModel{})

	switch f.Role {
	case booking.RoleOwner:
		q = q.Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", f.SubjectID)
	default:
		q = q.Where("bookings.booker_id = ?", f.SubjectID)
	}

	switch f.State {
	case booking.StateCurrent:
		q = q.Where("bookings.start_at <= ? AND bookings.end_at > ?", f.Now, f.Now)
	case booking.StatePast:
		q = q.Where("bookings.end_at < ?", f.Now)
	case booking.StateFuture:
		q = q.Where("bookings.start_at > ?", f.Now)
	case booking.StateWaiting:
		q = q.Where("bookings.status = ?", string(booking.StatusWaiting))
	case booking.StateRejected:
		q = q.Where("bookings.status = ?", string(booking.StatusRejected))
	}

	return q.Order("bookings.start_at DESC")
}

// LastFinished finds the approved booking with the greatest end at or before
// the given instant.
func (r *GormBookingRepository) LastFinished(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	return r.adjacentQuery(ctx, itemID, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.end_at <= ?", now).Order("bookings.end_at DESC")
	})
}

// CurrentlyRunning finds the approved booking spanning the given instant.
func (r *GormBookingRepository) CurrentlyRunning(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	return r.adjacentQuery(ctx, itemID, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.start_at <= ? AND bookings.end_at > ?", now, now).
			Order("bookings.end_at DESC")
	})
}

// NextUpcoming finds the approved booking with the smallest start after the
// given instant.
func (r *GormBookingRepository) NextUpcoming(ctx context.Context, itemID, ownerID uuid.UUID, now time.Time) (*booking.Booking, error) {
	return r.adjacentQuery(ctx, itemID, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.start_at > ?", now).Order("bookings.start_at ASC")
	})
}

func (r *GormBookingRepository) adjacentQuery(ctx context.Context, itemID, ownerID uuid.UUID, refine func(*gorm.DB) *gorm.DB) (*booking.Booking, error) {
	var model BookingModel
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("bookings.item_id = ? AND items.owner_id = ? AND bookings.status = ?",
			itemID, ownerID, string(booking.StatusApproved))
	err := refine(q).First(&model).Error
	if err != nil {
		// No qualifying booking is a normal outcome, not an error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve adjacent booking: %w", err)
	}
	return toDomainBooking(&model)
}

// HasApprovedStarted reports whether the user has an approved booking of the
// item that started before the given instant.
func (r *GormBookingRepository) HasApprovedStarted(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND start_at < ?",
			bookerID, itemID, string(booking.StatusApproved), now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check rental history: %w", err)
	}
	return count > 0, nil
}

// --- Conversion helpers ---

func toBookingModel(bk *booking.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*booking.Booking, error) {
	status, err := booking.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(
		m.ID, m.ItemID, m.BookerID,
		m.StartAt, m.EndAt,
		status,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*booking.Booking, error) {
	bookings := make([]*booking.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
