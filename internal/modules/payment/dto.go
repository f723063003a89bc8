package payment

type OwnerRequest struct {
	BookingID   *int64 `json:"booking_id,omitempty"`
	SelectionID *int64 `json:"selection_id,omitempty"`
}

type CreateCardPaymentRequest struct {
	OwnerRequest
	Amount   float64           `json:"amount" binding:"required,gt=0"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CardPaymentResponse struct {
	PaymentID    int64  `json:"payment_id"`
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type BankTransferRequest struct {
	OwnerRequest
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	ProofURL    string  `json:"proof_url" binding:"required"`
	BankDetails string  `json:"bank_details,omitempty"`
}

type VerifyRequest struct {
	Approved bool   `json:"approved"`
	Notes    string `json:"notes,omitempty"`
}

type RefundRequest struct {
	Amount *float64 `json:"amount,omitempty"`
	Reason string   `json:"reason,omitempty"`
}
