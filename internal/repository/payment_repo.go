package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photodesk/internal/domain"

	"gorm.io/gorm"
)

// PaymentRepository owns every ledger write. Each mutating method runs the
// payment-state change and the ledger recompute in one transaction, so two
// concurrent writers (webhook vs. admin verification) can never leave the
// cached owner aggregates stale. State transitions are guarded conditional
// updates (WHERE on the current status), which keeps replays idempotent on
// both postgres and sqlite.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment intent %s: %w", intentID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByOwner(ctx context.Context, owner domain.OwnerRef) ([]domain.Payment, error) {
	var rows []domain.Payment
	err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", owner.Kind, owner.ID).
		Order("id").
		Find(&rows).Error
	return rows, err
}

// LedgerResult reports the owner aggregates after a ledger operation.
type LedgerResult struct {
	Changed       bool
	Owner         domain.OwnerRef
	AmountPaid    float64
	PaymentStatus domain.PaymentStatus
}

// MarkCardPaid applies a charge-succeeded event. A replay finds the row
// already paid, matches zero rows in the guarded update and returns
// Changed=false without touching anything: that is the idempotency contract
// at-least-once delivery needs. A success event also overrides an earlier
// failure for the same intent (the provider is authoritative).
func (r *PaymentRepository) MarkCardPaid(ctx context.Context, intentID, chargeID string, paidAt time.Time) (LedgerResult, error) {
	var res LedgerResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findByIntent(tx, intentID)
		if err != nil {
			return err
		}
		res.Owner = p.Owner()
		upd := tx.Model(&domain.Payment{}).
			Where("id = ? AND status IN ?", p.ID, []domain.PaymentState{domain.PaymentStatePending, domain.PaymentStateFailed}).
			Updates(map[string]interface{}{
				"status":         domain.PaymentStatePaid,
				"charge_id":      chargeID,
				"paid_at":        paidAt,
				"failure_reason": "",
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			res.AmountPaid, res.PaymentStatus, err = currentAggregates(tx, res.Owner)
			return err
		}
		res.Changed = true
		return r.recompute(tx, res.Owner, &res)
	})
	return res, err
}

// MarkCardFailed applies a charge-failed event. Terminal rows are left alone:
// PAID is sticky, and a failure arriving after a refund is stale news.
func (r *PaymentRepository) MarkCardFailed(ctx context.Context, intentID, reason string) (LedgerResult, error) {
	var res LedgerResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findByIntent(tx, intentID)
		if err != nil {
			return err
		}
		res.Owner = p.Owner()
		upd := tx.Model(&domain.Payment{}).
			Where("id = ? AND status = ?", p.ID, domain.PaymentStatePending).
			Updates(map[string]interface{}{
				"status":         domain.PaymentStateFailed,
				"failure_reason": reason,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			res.AmountPaid, res.PaymentStatus, err = currentAggregates(tx, res.Owner)
			return err
		}
		res.Changed = true
		return r.recompute(tx, res.Owner, &res)
	})
	return res, err
}

// ApplyCardRefund applies a charge-refunded event, located by the provider's
// charge id. refunded carries the cumulative refunded amount, so replays and
// incremental refund events converge on the same row state.
func (r *PaymentRepository) ApplyCardRefund(ctx context.Context, chargeID string, refunded float64) (LedgerResult, error) {
	var res LedgerResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.Where("charge_id = ?", chargeID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("charge %s: %w", chargeID, domain.ErrNotFound)
			}
			return err
		}
		res.Owner = p.Owner()
		refunded = domain.RoundMoney(refunded)
		status := domain.PaymentStatePartiallyRefunded
		if refunded >= p.Amount {
			refunded = p.Amount
			status = domain.PaymentStateRefunded
		}
		upd := tx.Model(&domain.Payment{}).
			Where("id = ? AND (status <> ? OR refunded_amount <> ?)", p.ID, status, refunded).
			Where("status IN ?", []domain.PaymentState{domain.PaymentStatePaid, domain.PaymentStatePartiallyRefunded, domain.PaymentStateRefunded}).
			Updates(map[string]interface{}{
				"status":          status,
				"refunded_amount": refunded,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			var err error
			res.AmountPaid, res.PaymentStatus, err = currentAggregates(tx, res.Owner)
			return err
		}
		res.Changed = true
		return r.recompute(tx, res.Owner, &res)
	})
	return res, err
}

// VerifyBankTransfer settles a pending bank-transfer payment by admin action.
func (r *PaymentRepository) VerifyBankTransfer(ctx context.Context, paymentID int64, approved bool, verifierID int64, notes string, now time.Time) (LedgerResult, error) {
	var res LedgerResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.First(&p, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("payment %d: %w", paymentID, domain.ErrNotFound)
			}
			return err
		}
		if p.Method != domain.MethodBankTransfer || p.Status != domain.PaymentStatePending {
			return fmt.Errorf("payment %d is %s/%s: %w", p.ID, p.Method, p.Status, domain.ErrInvalidState)
		}
		res.Owner = p.Owner()
		updates := map[string]interface{}{
			"verified_by": verifierID,
			"verified_at": now,
		}
		if approved {
			updates["status"] = domain.PaymentStatePaid
			updates["paid_at"] = now
		} else {
			updates["status"] = domain.PaymentStateFailed
			updates["failure_reason"] = notes
		}
		upd := tx.Model(&domain.Payment{}).
			Where("id = ? AND status = ?", p.ID, domain.PaymentStatePending).
			Updates(updates)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return fmt.Errorf("payment %d already settled: %w", p.ID, domain.ErrInvalidState)
		}
		res.Changed = true
		return r.recompute(tx, res.Owner, &res)
	})
	return res, err
}

// RefundBankTransfer records a manual refund; the money already moved out of
// band, so the ledger settles synchronously.
func (r *PaymentRepository) RefundBankTransfer(ctx context.Context, paymentID int64, amount float64) (LedgerResult, error) {
	var res LedgerResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.First(&p, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("payment %d: %w", paymentID, domain.ErrNotFound)
			}
			return err
		}
		if p.Status != domain.PaymentStatePaid {
			return fmt.Errorf("payment %d is %s: %w", p.ID, p.Status, domain.ErrInvalidState)
		}
		res.Owner = p.Owner()
		refunded := domain.RoundMoney(p.RefundedAmount + amount)
		status := domain.PaymentStatePartiallyRefunded
		if refunded >= p.Amount {
			refunded = p.Amount
			status = domain.PaymentStateRefunded
		}
		upd := tx.Model(&domain.Payment{}).
			Where("id = ? AND status = ?", p.ID, domain.PaymentStatePaid).
			Updates(map[string]interface{}{
				"status":          status,
				"refunded_amount": refunded,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return fmt.Errorf("payment %d already settled: %w", p.ID, domain.ErrInvalidState)
		}
		res.Changed = true
		return r.recompute(tx, res.Owner, &res)
	})
	return res, err
}

// Recompute re-derives the owner aggregates outside of any payment mutation,
// e.g. when a ledger is initialized for a fresh booking.
func (r *PaymentRepository) Recompute(ctx context.Context, owner domain.OwnerRef) (LedgerResult, error) {
	res := LedgerResult{Owner: owner}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.recompute(tx, owner, &res)
	})
	return res, err
}

func findByIntent(tx *gorm.DB, intentID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := tx.Where("intent_id = ?", intentID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment intent %s: %w", intentID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// recompute is the single writer of the owner's cached amountPaid /
// paymentStatus / depositPaid. It always re-derives from the full payment
// row set, never increments, so read-committed isolation suffices.
func (r *PaymentRepository) recompute(tx *gorm.DB, owner domain.OwnerRef, res *LedgerResult) error {
	var rows []domain.Payment
	if err := tx.Where("owner_kind = ? AND owner_id = ?", owner.Kind, owner.ID).Find(&rows).Error; err != nil {
		return err
	}
	var amountPaid float64
	for i := range rows {
		amountPaid += rows[i].Contribution()
	}
	amountPaid = domain.RoundMoney(amountPaid)

	switch owner.Kind {
	case domain.OwnerBooking:
		var b domain.Booking
		if err := tx.Preload("AddOns").First(&b, owner.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", owner.ID, domain.ErrNotFound)
			}
			return err
		}
		status := deriveStatus(amountPaid, b.ComputedTotal())
		depositPaid := status == domain.PaymentPaid ||
			(b.DepositAmount > 0 && amountPaid >= b.DepositAmount)
		res.AmountPaid = amountPaid
		res.PaymentStatus = status
		return tx.Model(&domain.Booking{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
			"amount_paid":    amountPaid,
			"payment_status": status,
			"deposit_paid":   depositPaid,
		}).Error

	case domain.OwnerSelection:
		var s domain.DownloadSelection
		if err := tx.First(&s, owner.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("selection %d: %w", owner.ID, domain.ErrNotFound)
			}
			return err
		}
		status := deriveStatus(amountPaid, s.Price)
		res.AmountPaid = amountPaid
		res.PaymentStatus = status
		return tx.Model(&domain.DownloadSelection{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
			"amount_paid":    amountPaid,
			"payment_status": status,
		}).Error
	}
	return fmt.Errorf("unknown payment owner kind %q", owner.Kind)
}

func deriveStatus(amountPaid, due float64) domain.PaymentStatus {
	switch {
	case amountPaid == 0:
		return domain.PaymentUnpaid
	case amountPaid >= due:
		return domain.PaymentPaid
	default:
		return domain.PaymentPartiallyPaid
	}
}

func currentAggregates(tx *gorm.DB, owner domain.OwnerRef) (float64, domain.PaymentStatus, error) {
	switch owner.Kind {
	case domain.OwnerBooking:
		var b domain.Booking
		if err := tx.First(&b, owner.ID).Error; err != nil {
			return 0, "", err
		}
		return b.AmountPaid, b.PaymentStatus, nil
	case domain.OwnerSelection:
		var s domain.DownloadSelection
		if err := tx.First(&s, owner.ID).Error; err != nil {
			return 0, "", err
		}
		return s.AmountPaid, s.PaymentStatus, nil
	}
	return 0, "", fmt.Errorf("unknown payment owner kind %q", owner.Kind)
}
