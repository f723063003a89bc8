package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"photodesk/internal/domain"
)

// StripeProvider implements Provider on the Stripe API.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

func NewStripeProvider(apiKey, webhookSecret string) *StripeProvider {
	return &StripeProvider{
		api:           client.New(apiKey, nil),
		webhookSecret: webhookSecret,
	}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(amount)),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if len(metadata) > 0 {
		params.Metadata = metadata
	}
	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent: %w", err)
	}
	return &Intent{IntentID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (p *StripeProvider) RetrieveIntent(ctx context.Context, intentID string) (string, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := p.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return "", fmt.Errorf("stripe retrieve intent: %w", err)
	}
	return string(pi.Status), nil
}

func (p *StripeProvider) CreateRefund(ctx context.Context, intentID string, amount *float64, reason string) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	params.Context = ctx
	if amount != nil {
		params.Amount = stripe.Int64(minorUnits(*amount))
	}
	if reason != "" {
		params.Metadata = map[string]string{"reason": reason}
	}
	ref, err := p.api.Refunds.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create refund: %w", err)
	}
	return ref.ID, nil
}

// VerifyWebhook checks the signature over the raw payload and normalises the
// event. Unknown event types come back as EventUnknown so the reconciler can
// acknowledge them.
func (p *StripeProvider) VerifyWebhook(payload []byte, signature string) (*Event, error) {
	ev, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSignature, err)
	}

	switch ev.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment_intent: %w", err)
		}
		out := &Event{
			Kind:     EventIntentSucceeded,
			IntentID: pi.ID,
			Amount:   majorUnits(pi.Amount),
		}
		if pi.LatestCharge != nil {
			out.ChargeID = pi.LatestCharge.ID
		}
		return out, nil

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("decode payment_intent: %w", err)
		}
		out := &Event{
			Kind:     EventIntentFailed,
			IntentID: pi.ID,
		}
		if pi.LastPaymentError != nil {
			out.FailureReason = pi.LastPaymentError.Msg
		}
		return out, nil

	case "charge.refunded":
		var ch stripe.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return nil, fmt.Errorf("decode charge: %w", err)
		}
		return &Event{
			Kind:           EventChargeRefunded,
			ChargeID:       ch.ID,
			Amount:         majorUnits(ch.Amount),
			AmountRefunded: majorUnits(ch.AmountRefunded),
		}, nil
	}

	return &Event{Kind: EventUnknown}, nil
}

func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func majorUnits(amount int64) float64 {
	return float64(amount) / 100
}
