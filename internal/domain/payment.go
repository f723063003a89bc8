package domain

import "time"

type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

type PaymentState string

const (
	PaymentStatePending           PaymentState = "pending"
	PaymentStatePaid              PaymentState = "paid"
	PaymentStateFailed            PaymentState = "failed"
	PaymentStateRefunded          PaymentState = "refunded"
	PaymentStatePartiallyRefunded PaymentState = "partially_refunded"
)

// OwnerKind tags which aggregate a payment belongs to.
type OwnerKind string

const (
	OwnerBooking   OwnerKind = "booking"
	OwnerSelection OwnerKind = "selection"
)

// OwnerRef is the tagged variant "Booking(id) | DownloadSelection(id)" so the
// ledger recompute is written once against it.
type OwnerRef struct {
	Kind OwnerKind
	ID   int64
}

func BookingOwner(id int64) OwnerRef   { return OwnerRef{Kind: OwnerBooking, ID: id} }
func SelectionOwner(id int64) OwnerRef { return OwnerRef{Kind: OwnerSelection, ID: id} }

type Payment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	OwnerKind OwnerKind `gorm:"type:varchar(16);index:idx_payments_owner;not null" json:"owner_kind"`
	OwnerID   int64     `gorm:"index:idx_payments_owner;not null" json:"owner_id"`

	Amount         float64       `gorm:"not null" json:"amount"`
	RefundedAmount float64       `gorm:"default:0" json:"refunded_amount"`
	Currency       string        `gorm:"type:varchar(3);not null" json:"currency"`
	Method         PaymentMethod `gorm:"type:varchar(16);not null" json:"method"`
	Status         PaymentState  `gorm:"type:varchar(24);default:'pending';index" json:"status"`

	// Card rail.
	IntentID string `gorm:"type:varchar(128);uniqueIndex:idx_payments_intent,where:intent_id <> ''" json:"intent_id,omitempty"`
	ChargeID string `gorm:"type:varchar(128);index" json:"charge_id,omitempty"`

	// Bank-transfer rail.
	Reference   string     `gorm:"type:varchar(64)" json:"reference,omitempty"`
	ProofURL    string     `gorm:"type:text" json:"proof_url,omitempty"`
	BankDetails string     `gorm:"type:text" json:"bank_details,omitempty"`
	VerifiedBy  *int64     `json:"verified_by,omitempty"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`

	FailureReason string     `gorm:"type:text" json:"failure_reason,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) Owner() OwnerRef { return OwnerRef{Kind: p.OwnerKind, ID: p.OwnerID} }

// Contribution is what this row adds to the owner's paid balance.
func (p *Payment) Contribution() float64 {
	switch p.Status {
	case PaymentStatePaid:
		return p.Amount
	case PaymentStatePartiallyRefunded:
		return roundMoney(p.Amount - p.RefundedAmount)
	default:
		return 0
	}
}

// Terminal reports whether no further provider event may move this payment,
// except that a charge-succeeded event still overrides failed.
func (p *Payment) Terminal() bool {
	switch p.Status {
	case PaymentStatePaid, PaymentStateFailed, PaymentStateRefunded, PaymentStatePartiallyRefunded:
		return true
	}
	return false
}
