package payment

import "context"

// Intent is the client-facing handle for a card charge created at the
// provider. The secret is returned to the caller once and never stored.
type Intent struct {
	IntentID     string
	ClientSecret string
}

type EventKind string

const (
	EventIntentSucceeded EventKind = "intent_succeeded"
	EventIntentFailed    EventKind = "intent_failed"
	EventChargeRefunded  EventKind = "charge_refunded"
	EventUnknown         EventKind = "unknown"
)

// Event is a provider webhook event normalised for the reconciler. Amounts
// are in major units of the event's currency.
type Event struct {
	Kind           EventKind
	IntentID       string
	ChargeID       string
	Amount         float64
	AmountRefunded float64
	FailureReason  string
}

// Provider is the card-network boundary. Implementations must verify webhook
// signatures against the raw, untransformed request body.
type Provider interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (string, error)
	CreateRefund(ctx context.Context, intentID string, amount *float64, reason string) (string, error)
	VerifyWebhook(payload []byte, signature string) (*Event, error)
}
