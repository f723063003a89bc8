package payment

import (
	"context"
	"time"

	"photodesk/internal/domain"
	"photodesk/internal/repository"
)

// ledgerStore is the transactional payment store; every mutation runs the
// ledger recompute in the same transaction.
type ledgerStore interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Payment, error)
	MarkCardPaid(ctx context.Context, intentID, chargeID string, paidAt time.Time) (repository.LedgerResult, error)
	MarkCardFailed(ctx context.Context, intentID, reason string) (repository.LedgerResult, error)
	ApplyCardRefund(ctx context.Context, chargeID string, refunded float64) (repository.LedgerResult, error)
	VerifyBankTransfer(ctx context.Context, paymentID int64, approved bool, verifierID int64, notes string, now time.Time) (repository.LedgerResult, error)
	RefundBankTransfer(ctx context.Context, paymentID int64, amount float64) (repository.LedgerResult, error)
}

// ownerReader resolves a payment owner to its currency for validation.
type ownerReader interface {
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	GetSelection(ctx context.Context, id int64) (*domain.DownloadSelection, error)
}

// selectionAdvancer lets a settled selection ledger advance the download
// workflow without this package importing it.
type selectionAdvancer interface {
	OnPaid(ctx context.Context, selectionID int64) error
}

type notificationSender interface {
	Notify(userID int64, kind domain.NotificationKind, title, body string, data map[string]any)
}
