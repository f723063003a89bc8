package booking

import (
	"context"

	"photodesk/internal/domain"
	"photodesk/internal/modules/catalog"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error)
	UpdateApproval(ctx context.Context, id int64, from, to domain.ApprovalStatus, notes string) (bool, error)
	UpdateFulfillment(ctx context.Context, id int64, from, to domain.FulfillmentStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type QuoteReader interface {
	BuildQuote(ctx context.Context, packageID int64, country domain.Country, addOns []catalog.AddOnRequest) (*domain.Quote, error)
}

type NotificationSender interface {
	Notify(userID int64, kind domain.NotificationKind, title, body string, data map[string]any)
}
