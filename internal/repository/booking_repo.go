package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photodesk/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking together with its frozen add-on lines and staff
// assignments. gorm cascades the associations inside one transaction, so the
// three inserts commit together or not at all.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("AddOns").
		Preload("Assignments").
		First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("AddOns").
		Where("client_id = ?", clientID).
		Order("date_time DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}

// UpdateApproval moves approval status with a guard on the expected current
// status. Returns false when the guard matched no row.
func (r *BookingRepository) UpdateApproval(ctx context.Context, id int64, from, to domain.ApprovalStatus, notes string) (bool, error) {
	col := "approval_notes"
	if to == domain.ApprovalRejected {
		col = "rejection_reason"
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND approval_status = ?", id, from).
		Updates(map[string]interface{}{
			"approval_status": to,
			col:               notes,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *BookingRepository) UpdateFulfillment(ctx context.Context, id int64, from, to domain.FulfillmentStatus) (bool, error) {
	updates := map[string]interface{}{"fulfillment_status": to}
	if to == domain.FulfillmentCanceled {
		now := time.Now().UTC()
		updates["canceled_at"] = now
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND fulfillment_status = ?", id, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&domain.BookingAddOn{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", id).Delete(&domain.BookingAssignment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Booking{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}
