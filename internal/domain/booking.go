package domain

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type FulfillmentStatus string

const (
	FulfillmentScheduled FulfillmentStatus = "scheduled"
	FulfillmentCompleted FulfillmentStatus = "completed"
	FulfillmentCanceled  FulfillmentStatus = "canceled"
)

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
)

type Booking struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ClientID  int64     `gorm:"index;not null" json:"client_id"`
	PackageID int64     `gorm:"index;not null" json:"package_id"`
	Country   Country   `gorm:"type:varchar(2);not null" json:"country"`
	DateTime  time.Time `gorm:"not null" json:"date_time"`

	// Price and currency are frozen from the quote at creation time and never
	// re-read from the catalog.
	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"type:varchar(3);not null" json:"currency"`

	DepositAmount float64 `json:"deposit_amount,omitempty"`

	ApprovalStatus    ApprovalStatus    `gorm:"type:varchar(16);default:'pending';index" json:"approval_status"`
	FulfillmentStatus FulfillmentStatus `gorm:"type:varchar(16);default:'scheduled'" json:"fulfillment_status"`

	// Cached ledger aggregates. Written only by the payment ledger recompute.
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);default:'unpaid'" json:"payment_status"`
	AmountPaid    float64       `gorm:"default:0" json:"amount_paid"`
	DepositPaid   bool          `gorm:"default:false" json:"deposit_paid"`

	ApprovalNotes   string     `gorm:"type:text" json:"approval_notes,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	CanceledAt      *time.Time `json:"canceled_at,omitempty"`

	AddOns      []BookingAddOn      `gorm:"foreignKey:BookingID" json:"add_ons,omitempty"`
	Assignments []BookingAssignment `gorm:"foreignKey:BookingID" json:"assignments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// ComputedTotal is package price plus frozen add-on line totals. It is never
// stored, so it cannot drift from its components.
func (b *Booking) ComputedTotal() float64 {
	total := b.Price
	for _, l := range b.AddOns {
		total += l.TotalPrice
	}
	return roundMoney(total)
}

// BookingAddOn is a price line frozen from the quote.
type BookingAddOn struct {
	ID         int64   `gorm:"primaryKey" json:"id"`
	BookingID  int64   `gorm:"index;not null" json:"booking_id"`
	AddOnID    int64   `gorm:"not null" json:"add_on_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
	Currency   string  `gorm:"type:varchar(3);not null" json:"currency"`
}

func (BookingAddOn) TableName() string { return "booking_add_ons" }

type BookingAssignment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BookingID int64     `gorm:"index;not null" json:"booking_id"`
	UserID    int64     `gorm:"not null" json:"user_id"`
	RoleNote  string    `json:"role_note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (BookingAssignment) TableName() string { return "booking_assignments" }
