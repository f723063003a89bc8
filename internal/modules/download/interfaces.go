package download

import (
	"context"
	"time"

	"photodesk/internal/domain"
)

type SelectionRepository interface {
	Create(ctx context.Context, s *domain.DownloadSelection) error
	GetByID(ctx context.Context, id int64) (*domain.DownloadSelection, error)
	GetByToken(ctx context.Context, token string) (*domain.DownloadSelection, error)
	UpdateDelivery(ctx context.Context, id int64, from []domain.DeliveryStatus, to domain.DeliveryStatus, updates map[string]interface{}) (bool, error)
	DeleteExpiredUnapproved(ctx context.Context, now time.Time) (int64, error)
}

type EventReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	CountPhotosIn(ctx context.Context, eventID int64, photoIDs []int64) (int64, error)
}

type NotificationSender interface {
	Notify(userID int64, kind domain.NotificationKind, title, body string, data map[string]any)
}
