package payment

import (
	"context"
	"errors"
	"time"

	"photodesk/internal/domain"
)

// HandleWebhook applies a provider event to the ledger. Delivery is
// at-least-once and unordered; every transition checks the stored status
// before writing, so replays are true no-ops. Events referencing payments we
// never created are acknowledged and logged (an orphaned intent from a failed
// local insert looks exactly like this). Unknown event kinds are acknowledged
// and ignored.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	event, err := s.provider.VerifyWebhook(rawBody, signature)
	if err != nil {
		return err
	}

	switch event.Kind {
	case EventIntentSucceeded:
		res, err := s.payments.MarkCardPaid(ctx, event.IntentID, event.ChargeID, time.Now().UTC())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.loggerf("level=warn msg=webhook for unknown intent intent_id=%s", event.IntentID)
				return nil
			}
			return err
		}
		if !res.Changed {
			s.loggerf("level=info msg=idempotent replay intent_id=%s", event.IntentID)
			return nil
		}
		s.afterPaid(ctx, res.Owner, res.PaymentStatus)
		return nil

	case EventIntentFailed:
		res, err := s.payments.MarkCardFailed(ctx, event.IntentID, event.FailureReason)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.loggerf("level=warn msg=webhook for unknown intent intent_id=%s", event.IntentID)
				return nil
			}
			return err
		}
		if !res.Changed {
			s.loggerf("level=info msg=failure event ignored, payment already settled intent_id=%s", event.IntentID)
		}
		return nil

	case EventChargeRefunded:
		res, err := s.payments.ApplyCardRefund(ctx, event.ChargeID, event.AmountRefunded)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.loggerf("level=warn msg=webhook for unknown charge charge_id=%s", event.ChargeID)
				return nil
			}
			return err
		}
		if !res.Changed {
			s.loggerf("level=info msg=idempotent refund replay charge_id=%s", event.ChargeID)
		}
		return nil
	}

	s.loggerf("level=info msg=ignoring unknown webhook event kind=%s", event.Kind)
	return nil
}
