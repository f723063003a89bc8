package booking

import (
	"time"

	"photodesk/internal/domain"
	"photodesk/internal/modules/catalog"
)

type CreateBookingRequest struct {
	ClientID      int64                  `json:"client_id" binding:"required"`
	PackageID     int64                  `json:"package_id" binding:"required"`
	Country       domain.Country         `json:"country" binding:"required"`
	DateTime      time.Time              `json:"date_time" binding:"required"`
	AddOns        []catalog.AddOnRequest `json:"add_ons,omitempty"`
	AssigneeIDs   []int64                `json:"assignee_ids,omitempty"`
	DepositAmount float64                `json:"deposit_amount,omitempty"`
}

type ApproveRequest struct {
	Notes string `json:"notes,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// BookingResponse carries the booking plus its computed total; the total is
// derived from the frozen lines on every read and never stored.
type BookingResponse struct {
	*domain.Booking
	ComputedTotal float64 `json:"computed_total"`
}

func toResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{Booking: b, ComputedTotal: b.ComputedTotal()}
}
