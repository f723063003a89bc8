package domain

import (
	"encoding/json"
	"time"
)

type NotificationKind string

const (
	NotifBookingConfirmed      NotificationKind = "booking_confirmed"
	NotifBookingReceived       NotificationKind = "booking_received"
	NotifBookingAccepted       NotificationKind = "booking_accepted"
	NotifBookingCancelled      NotificationKind = "booking_cancelled"
	NotifPaymentReceived       NotificationKind = "payment_received"
	NotifSelectionReady        NotificationKind = "selection_ready"
	NotifSelectionRejected     NotificationKind = "selection_rejected"
	NotifBankTransferSubmitted NotificationKind = "bank_transfer_submitted"
)

type Notification struct {
	ID        int64            `gorm:"primaryKey" json:"id"`
	UserID    int64            `gorm:"index;not null" json:"user_id"`
	Kind      NotificationKind `gorm:"type:varchar(40);not null" json:"kind"`
	Title     string           `gorm:"not null" json:"title"`
	Body      string           `gorm:"type:text" json:"body,omitempty"`
	Data      json.RawMessage  `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
