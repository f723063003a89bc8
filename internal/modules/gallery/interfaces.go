package gallery

import (
	"context"

	"photodesk/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Event, error)
	AddPhotos(ctx context.Context, photos []domain.Photo) error
	ListPhotos(ctx context.Context, eventID int64) ([]domain.Photo, error)
	DeletePhoto(ctx context.Context, eventID, photoID int64) error
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}
