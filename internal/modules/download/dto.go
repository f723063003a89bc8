package download

import (
	"time"

	"photodesk/internal/domain"
)

type CreateSelectionRequest struct {
	EventID   int64      `json:"event_id" binding:"required"`
	PhotoIDs  []int64    `json:"photo_ids" binding:"required,min=1"`
	Price     float64    `json:"price"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type RejectSelectionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ApproveSelectionRequest struct {
	Note string `json:"note"`
}

// PublicSelectionResponse is what the token endpoint exposes; internal ids
// and ledger aggregates stay private.
type PublicSelectionResponse struct {
	Token          string                `json:"token"`
	DeliveryStatus domain.DeliveryStatus `json:"delivery_status"`
	PaymentStatus  domain.PaymentStatus  `json:"payment_status"`
	Price          float64               `json:"price"`
	Currency       string                `json:"currency,omitempty"`
	ExpiresAt      *time.Time            `json:"expires_at,omitempty"`
	Files          []PublicFile          `json:"files"`
}

type PublicFile struct {
	PhotoID  int64 `json:"photo_id"`
	Position int   `json:"position"`
}

func toPublic(sel *domain.DownloadSelection) PublicSelectionResponse {
	resp := PublicSelectionResponse{
		Token:          sel.Token,
		DeliveryStatus: sel.DeliveryStatus,
		PaymentStatus:  sel.PaymentStatus,
		Price:          sel.Price,
		Currency:       sel.Currency,
		ExpiresAt:      sel.ExpiresAt,
	}
	for _, f := range sel.Files {
		resp.Files = append(resp.Files, PublicFile{PhotoID: f.PhotoID, Position: f.Position})
	}
	return resp
}
