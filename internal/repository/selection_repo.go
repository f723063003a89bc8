package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photodesk/internal/domain"

	"gorm.io/gorm"
)

type SelectionRepository struct {
	db *gorm.DB
}

func NewSelectionRepository(db *gorm.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) Create(ctx context.Context, s *domain.DownloadSelection) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SelectionRepository) GetByID(ctx context.Context, id int64) (*domain.DownloadSelection, error) {
	var s domain.DownloadSelection
	err := r.db.WithContext(ctx).Preload("Files").First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("selection %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SelectionRepository) GetByToken(ctx context.Context, token string) (*domain.DownloadSelection, error) {
	var s domain.DownloadSelection
	err := r.db.WithContext(ctx).Preload("Files").Where("token = ?", token).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateDelivery moves delivery status with a guard on the allowed current
// states. Returns false when the guard matched no row.
func (r *SelectionRepository) UpdateDelivery(ctx context.Context, id int64, from []domain.DeliveryStatus, to domain.DeliveryStatus, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["delivery_status"] = to
	res := r.db.WithContext(ctx).
		Model(&domain.DownloadSelection{}).
		Where("id = ? AND delivery_status IN ?", id, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// DeleteExpiredUnapproved removes selections whose expiry passed without ever
// reaching an approved or terminal state. Used by the cleanup sweep.
func (r *SelectionRepository) DeleteExpiredUnapproved(ctx context.Context, now time.Time) (int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.DownloadSelection{}).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Where("delivery_status IN ?", []domain.DeliveryStatus{domain.DeliveryPendingPayment, domain.DeliveryPendingApproval}).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("selection_id IN ?", ids).Delete(&domain.SelectionFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.DownloadSelection{}, ids).Error
	})
	return int64(len(ids)), err
}
