package domain

import "time"

type DeliveryStatus string

const (
	DeliveryPendingPayment  DeliveryStatus = "pending_payment"
	DeliveryPendingApproval DeliveryStatus = "pending_approval"
	DeliveryProcessing      DeliveryStatus = "processing_delivery"
	DeliveryShipped         DeliveryStatus = "shipped"
	DeliveryRejected        DeliveryStatus = "rejected"
)

// DownloadSelection is a token-addressed photo-delivery request. Expiry is a
// read-time guard: an expired selection keeps its last delivery status.
type DownloadSelection struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	EventID int64  `gorm:"index;not null" json:"event_id"`
	Token   string `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`

	Country Country `gorm:"type:varchar(2);not null" json:"country"`

	// Amount due for the delivery; 0 means no payment gate.
	Price    float64 `gorm:"default:0" json:"price"`
	Currency string  `gorm:"type:varchar(3)" json:"currency,omitempty"`

	DeliveryStatus DeliveryStatus `gorm:"type:varchar(24);index" json:"delivery_status"`

	// Cached ledger aggregates, written only by recompute.
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);default:'unpaid'" json:"payment_status"`
	AmountPaid    float64       `gorm:"default:0" json:"amount_paid"`

	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	DeliverableNote string     `gorm:"type:text" json:"deliverable_note,omitempty"`
	ApprovedBy      *int64     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`

	Files []SelectionFile `gorm:"foreignKey:SelectionID" json:"files,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DownloadSelection) TableName() string { return "download_selections" }

func (s *DownloadSelection) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

func (s *DownloadSelection) TerminalDelivery() bool {
	return s.DeliveryStatus == DeliveryShipped || s.DeliveryStatus == DeliveryRejected
}

type SelectionFile struct {
	ID          int64 `gorm:"primaryKey" json:"id"`
	SelectionID int64 `gorm:"index;not null" json:"selection_id"`
	PhotoID     int64 `gorm:"not null" json:"photo_id"`
	Position    int   `gorm:"not null" json:"position"`
}

func (SelectionFile) TableName() string { return "selection_files" }
