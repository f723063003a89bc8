package repository

import (
	"context"
	"errors"
	"fmt"

	"photodesk/internal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Event, error) {
	var rows []domain.Event
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("shot_at DESC").Find(&rows).Error
	return rows, err
}

func (r *EventRepository) AddPhotos(ctx context.Context, photos []domain.Photo) error {
	return r.db.WithContext(ctx).Create(&photos).Error
}

func (r *EventRepository) ListPhotos(ctx context.Context, eventID int64) ([]domain.Photo, error) {
	var rows []domain.Photo
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&rows).Error
	return rows, err
}

// CountPhotosIn reports how many of the given photo ids belong to the event.
func (r *EventRepository) CountPhotosIn(ctx context.Context, eventID int64, photoIDs []int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Photo{}).
		Where("event_id = ? AND id IN ?", eventID, photoIDs).
		Count(&n).Error
	return n, err
}

func (r *EventRepository) DeletePhoto(ctx context.Context, eventID, photoID int64) error {
	res := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&domain.Photo{}, photoID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("photo %d: %w", photoID, domain.ErrNotFound)
	}
	return nil
}
