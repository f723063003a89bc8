package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"photodesk/internal/domain"
)

// Service is the payment ledger: it owns every payment attempt against a
// booking or a download selection and keeps the owner's derived payment
// state consistent through the transactional store.
type Service struct {
	payments ledgerStore
	owners   ownerReader
	provider Provider
	advancer selectionAdvancer
	notifs   notificationSender
	loggerf  func(format string, args ...interface{})
}

func NewService(payments ledgerStore, owners ownerReader, provider Provider, advancer selectionAdvancer, notifs notificationSender, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments: payments,
		owners:   owners,
		provider: provider,
		advancer: advancer,
		notifs:   notifs,
		loggerf:  loggerf,
	}
}

// CreateCardPayment asks the provider for a charge intent, then persists the
// PENDING row keyed by the intent id. The provider call happens before any
// local write: a provider failure leaves nothing persisted, and a local
// insert failure leaves an orphaned remote intent that simply never gets
// confirmed. PAID is only ever reached through the webhook reconciler.
func (s *Service) CreateCardPayment(ctx context.Context, owner domain.OwnerRef, amount float64, metadata map[string]string) (*domain.Payment, string, error) {
	currency, err := s.ownerCurrency(ctx, owner)
	if err != nil {
		return nil, "", err
	}
	if amount <= 0 {
		return nil, "", fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	}
	amount = domain.RoundMoney(amount)

	md := map[string]string{
		"owner_kind": string(owner.Kind),
		"owner_id":   strconv.FormatInt(owner.ID, 10),
	}
	for k, v := range metadata {
		md[k] = v
	}
	intent, err := s.provider.CreateIntent(ctx, amount, currency, md)
	if err != nil {
		return nil, "", fmt.Errorf("create charge intent: %w", err)
	}

	p := &domain.Payment{
		OwnerKind: owner.Kind,
		OwnerID:   owner.ID,
		Amount:    amount,
		Currency:  currency,
		Method:    domain.MethodCard,
		Status:    domain.PaymentStatePending,
		IntentID:  intent.IntentID,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		s.loggerf("level=error msg=payment insert failed after intent creation intent_id=%s err=%v", intent.IntentID, err)
		return nil, "", fmt.Errorf("save payment: %w", err)
	}
	return p, intent.ClientSecret, nil
}

// SubmitBankTransfer records a transfer proof as a PENDING payment. The
// owner's payment status is untouched until an admin verifies it.
func (s *Service) SubmitBankTransfer(ctx context.Context, owner domain.OwnerRef, amount float64, proofURL, bankDetails string) (*domain.Payment, error) {
	currency, err := s.ownerCurrency(ctx, owner)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", domain.ErrValidation)
	}
	p := &domain.Payment{
		OwnerKind:   owner.Kind,
		OwnerID:     owner.ID,
		Amount:      domain.RoundMoney(amount),
		Currency:    currency,
		Method:      domain.MethodBankTransfer,
		Status:      domain.PaymentStatePending,
		Reference:   strings.ReplaceAll(uuid.NewString(), "-", "")[:20],
		ProofURL:    proofURL,
		BankDetails: bankDetails,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}
	if owner.Kind == domain.OwnerBooking && s.notifs != nil {
		if b, err := s.owners.GetBooking(ctx, owner.ID); err == nil {
			s.notifs.Notify(b.ClientID, domain.NotifBankTransferSubmitted,
				"Bank transfer received",
				"Your transfer proof was received and is awaiting verification. Reference: "+p.Reference,
				map[string]any{"payment_id": p.ID, "reference": p.Reference})
		}
	}
	return p, nil
}

// VerifyBankTransfer settles a pending transfer by admin decision; the
// ledger recompute runs in the same transaction as the status write.
func (s *Service) VerifyBankTransfer(ctx context.Context, paymentID int64, approved bool, verifierID int64, notes string) (*domain.Payment, error) {
	res, err := s.payments.VerifyBankTransfer(ctx, paymentID, approved, verifierID, notes, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if approved {
		s.afterPaid(ctx, res.Owner, res.PaymentStatus)
	}
	return s.payments.GetByID(ctx, paymentID)
}

// Refund reverses a PAID payment. Card refunds settle asynchronously: the
// provider request is issued here and the ledger moves only when the
// charge-refunded webhook lands. Bank-transfer refunds are manual money
// movement that already happened, so they settle synchronously.
func (s *Service) Refund(ctx context.Context, paymentID int64, amount *float64, reason string) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentStatePaid {
		return nil, fmt.Errorf("payment %d is %s: %w", p.ID, p.Status, domain.ErrInvalidState)
	}

	if p.Method == domain.MethodCard {
		refundID, err := s.provider.CreateRefund(ctx, p.IntentID, amount, reason)
		if err != nil {
			return nil, fmt.Errorf("create refund: %w", err)
		}
		s.loggerf("level=info msg=card refund requested payment_id=%d refund_id=%s", p.ID, refundID)
		return p, nil
	}

	refundAmount := p.Amount
	if amount != nil {
		refundAmount = *amount
	}
	if refundAmount <= 0 || refundAmount > p.Amount {
		return nil, fmt.Errorf("refund amount %v: %w", refundAmount, domain.ErrValidation)
	}
	if _, err := s.payments.RefundBankTransfer(ctx, paymentID, refundAmount); err != nil {
		return nil, err
	}
	return s.payments.GetByID(ctx, paymentID)
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) ListForOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Payment, error) {
	return s.payments.ListByOwner(ctx, owner)
}

func (s *Service) ownerCurrency(ctx context.Context, owner domain.OwnerRef) (string, error) {
	switch owner.Kind {
	case domain.OwnerBooking:
		b, err := s.owners.GetBooking(ctx, owner.ID)
		if err != nil {
			return "", err
		}
		return b.Currency, nil
	case domain.OwnerSelection:
		sel, err := s.owners.GetSelection(ctx, owner.ID)
		if err != nil {
			return "", err
		}
		return sel.Currency, nil
	}
	return "", fmt.Errorf("unknown owner kind %q: %w", owner.Kind, domain.ErrValidation)
}

// afterPaid runs the post-settlement hooks: advancing a fully paid download
// selection and notifying. Both are best-effort and never fail the ledger
// write that triggered them.
func (s *Service) afterPaid(ctx context.Context, owner domain.OwnerRef, status domain.PaymentStatus) {
	if status != domain.PaymentPaid {
		return
	}
	if owner.Kind == domain.OwnerSelection && s.advancer != nil {
		if err := s.advancer.OnPaid(ctx, owner.ID); err != nil {
			s.loggerf("level=error msg=selection advance on payment failed selection_id=%d err=%v", owner.ID, err)
		}
	}
	if owner.Kind == domain.OwnerBooking && s.notifs != nil {
		b, err := s.owners.GetBooking(ctx, owner.ID)
		if err == nil {
			s.notifs.Notify(b.ClientID, domain.NotifPaymentReceived,
				"Payment received",
				"Your booking is fully paid.",
				map[string]any{"booking_id": b.ID})
		}
	}
}
