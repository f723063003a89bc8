package download

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"photodesk/internal/domain"
)

type Service struct {
	selections SelectionRepository
	events     EventReader
	notifs     NotificationSender
	now        func() time.Time
}

func NewService(selections SelectionRepository, events EventReader, notifs NotificationSender) *Service {
	return &Service{
		selections: selections,
		events:     events,
		notifs:     notifs,
		now:        time.Now,
	}
}

// CreateSelection issues an unguessable token for a set of event photos. The
// initial delivery status follows the owning event's country policy:
// upfront-payment markets start at PENDING_PAYMENT (when a price is set),
// review markets at PENDING_APPROVAL.
func (s *Service) CreateSelection(ctx context.Context, req CreateSelectionRequest) (*domain.DownloadSelection, error) {
	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	policy, ok := domain.PolicyFor(event.Country)
	if !ok {
		return nil, fmt.Errorf("unsupported country %q: %w", event.Country, domain.ErrValidation)
	}
	if len(req.PhotoIDs) == 0 {
		return nil, fmt.Errorf("at least one photo is required: %w", domain.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", domain.ErrValidation)
	}
	n, err := s.events.CountPhotosIn(ctx, event.ID, req.PhotoIDs)
	if err != nil {
		return nil, err
	}
	if n != int64(len(req.PhotoIDs)) {
		return nil, fmt.Errorf("photos must belong to event %d: %w", event.ID, domain.ErrValidation)
	}

	status := domain.DeliveryPendingApproval
	if policy.RequiresUpfrontPayment && req.Price > 0 {
		status = domain.DeliveryPendingPayment
	}

	sel := &domain.DownloadSelection{
		EventID:        event.ID,
		Token:          newToken(),
		Country:        event.Country,
		Price:          domain.RoundMoney(req.Price),
		Currency:       policy.Currency,
		DeliveryStatus: status,
		PaymentStatus:  domain.PaymentUnpaid,
		ExpiresAt:      req.ExpiresAt,
	}
	for i, photoID := range req.PhotoIDs {
		sel.Files = append(sel.Files, domain.SelectionFile{PhotoID: photoID, Position: i})
	}
	if err := s.selections.Create(ctx, sel); err != nil {
		return nil, fmt.Errorf("create selection: %w", err)
	}
	return sel, nil
}

// Approve moves a selection to PROCESSING_DELIVERY. Valid from
// PENDING_APPROVAL, or from PENDING_PAYMENT once the ledger reports PAID.
func (s *Service) Approve(ctx context.Context, id, approverID int64, note string) (*domain.DownloadSelection, error) {
	sel, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sel.Expired(s.now()) {
		return nil, fmt.Errorf("selection %d: %w", id, domain.ErrExpired)
	}
	allowed := sel.DeliveryStatus == domain.DeliveryPendingApproval ||
		(sel.DeliveryStatus == domain.DeliveryPendingPayment && sel.PaymentStatus == domain.PaymentPaid)
	if !allowed {
		return nil, fmt.Errorf("selection %d is %s (payment %s): %w",
			id, sel.DeliveryStatus, sel.PaymentStatus, domain.ErrInvalidTransition)
	}

	now := s.now().UTC()
	changed, err := s.selections.UpdateDelivery(ctx, id,
		[]domain.DeliveryStatus{domain.DeliveryPendingApproval, domain.DeliveryPendingPayment},
		domain.DeliveryProcessing,
		map[string]interface{}{
			"approved_by":      approverID,
			"approved_at":      now,
			"deliverable_note": note,
		})
	if err != nil {
		return nil, err
	}
	if changed {
		s.notifyReady(ctx, sel)
	}
	return s.selections.GetByID(ctx, id)
}

// Reject is valid from any non-terminal state and is terminal itself.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (*domain.DownloadSelection, error) {
	sel, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sel.Expired(s.now()) {
		return nil, fmt.Errorf("selection %d: %w", id, domain.ErrExpired)
	}
	if sel.TerminalDelivery() {
		return nil, fmt.Errorf("selection %d is %s: %w", id, sel.DeliveryStatus, domain.ErrInvalidTransition)
	}
	changed, err := s.selections.UpdateDelivery(ctx, id,
		[]domain.DeliveryStatus{domain.DeliveryPendingPayment, domain.DeliveryPendingApproval, domain.DeliveryProcessing},
		domain.DeliveryRejected,
		map[string]interface{}{"rejection_reason": reason})
	if err != nil {
		return nil, err
	}
	if changed {
		s.notifyRejected(ctx, sel, reason)
	}
	return s.selections.GetByID(ctx, id)
}

// Complete marks the delivery shipped; only valid from PROCESSING_DELIVERY.
func (s *Service) Complete(ctx context.Context, id int64) (*domain.DownloadSelection, error) {
	sel, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sel.Expired(s.now()) {
		return nil, fmt.Errorf("selection %d: %w", id, domain.ErrExpired)
	}
	changed, err := s.selections.UpdateDelivery(ctx, id,
		[]domain.DeliveryStatus{domain.DeliveryProcessing},
		domain.DeliveryShipped, nil)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, fmt.Errorf("selection %d is %s: %w", id, sel.DeliveryStatus, domain.ErrInvalidTransition)
	}
	return s.selections.GetByID(ctx, id)
}

// ResolveByToken is the unauthenticated public lookup. Expiry is evaluated
// lazily on every access and never mutates the stored delivery status.
func (s *Service) ResolveByToken(ctx context.Context, token string) (*domain.DownloadSelection, error) {
	sel, err := s.selections.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sel.Expired(s.now()) {
		return nil, fmt.Errorf("selection token: %w", domain.ErrExpired)
	}
	return sel, nil
}

func (s *Service) GetSelection(ctx context.Context, id int64) (*domain.DownloadSelection, error) {
	return s.selections.GetByID(ctx, id)
}

// OnPaid is the ledger's post-settlement hook. In auto-approve markets a paid
// selection advances straight to PROCESSING_DELIVERY; elsewhere the payment
// gate is cleared and a human still approves.
func (s *Service) OnPaid(ctx context.Context, selectionID int64) error {
	sel, err := s.selections.GetByID(ctx, selectionID)
	if err != nil {
		return err
	}
	if sel.Expired(s.now()) {
		return fmt.Errorf("selection %d: %w", selectionID, domain.ErrExpired)
	}
	policy, ok := domain.PolicyFor(sel.Country)
	if !ok || !policy.AutoApproveOnPayment {
		return nil
	}
	changed, err := s.selections.UpdateDelivery(ctx, selectionID,
		[]domain.DeliveryStatus{domain.DeliveryPendingPayment},
		domain.DeliveryProcessing, nil)
	if err != nil {
		return err
	}
	if changed {
		s.notifyReady(ctx, sel)
	}
	return nil
}

// CleanupExpired deletes expired never-approved selections; used by the
// periodic sweep.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.selections.DeleteExpiredUnapproved(ctx, s.now().UTC())
}

func (s *Service) notifyReady(ctx context.Context, sel *domain.DownloadSelection) {
	if s.notifs == nil {
		return
	}
	event, err := s.events.GetByID(ctx, sel.EventID)
	if err != nil {
		return
	}
	s.notifs.Notify(event.ClientID, domain.NotifSelectionReady,
		"Your files are ready",
		"Your photo delivery is being prepared. Download link: /downloads/"+sel.Token,
		map[string]any{"selection_id": sel.ID, "token": sel.Token})
}

func (s *Service) notifyRejected(ctx context.Context, sel *domain.DownloadSelection, reason string) {
	if s.notifs == nil {
		return
	}
	event, err := s.events.GetByID(ctx, sel.EventID)
	if err != nil {
		return
	}
	s.notifs.Notify(event.ClientID, domain.NotifSelectionRejected,
		"Your delivery was declined",
		"Your photo delivery request was declined: "+reason,
		map[string]any{"selection_id": sel.ID, "reason": reason})
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
