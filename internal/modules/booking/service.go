package booking

import (
	"context"
	"fmt"

	"photodesk/internal/domain"
)

type Service struct {
	bookings BookingRepository
	clients  ClientReader
	quotes   QuoteReader
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, clients ClientReader, quotes QuoteReader, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		clients:  clients,
		quotes:   quotes,
		notifs:   notifs,
	}
}

// CreateBooking freezes a catalog quote into a new booking. Quote failures
// happen before anything is written; the booking, its add-on lines and staff
// assignments are inserted in one transaction. The initial approval status
// comes from the country policy table, independent of any payment fact.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (BookingResponse, error) {
	policy, ok := domain.PolicyFor(req.Country)
	if !ok {
		return BookingResponse{}, fmt.Errorf("unsupported country %q: %w", req.Country, domain.ErrValidation)
	}
	if _, err := s.clients.GetByID(ctx, req.ClientID); err != nil {
		return BookingResponse{}, err
	}
	if req.DepositAmount < 0 {
		return BookingResponse{}, fmt.Errorf("deposit must not be negative: %w", domain.ErrValidation)
	}

	quote, err := s.quotes.BuildQuote(ctx, req.PackageID, req.Country, req.AddOns)
	if err != nil {
		return BookingResponse{}, err
	}

	b := &domain.Booking{
		ClientID:          req.ClientID,
		PackageID:         req.PackageID,
		Country:           req.Country,
		DateTime:          req.DateTime,
		Price:             quote.UnitPrice,
		Currency:          quote.Currency,
		DepositAmount:     domain.RoundMoney(req.DepositAmount),
		ApprovalStatus:    policy.InitialApprovalStatus,
		FulfillmentStatus: domain.FulfillmentScheduled,
		PaymentStatus:     domain.PaymentUnpaid,
	}
	for _, line := range quote.AddOns {
		b.AddOns = append(b.AddOns, domain.BookingAddOn{
			AddOnID:    line.AddOnID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			Currency:   line.Currency,
		})
	}
	for _, userID := range req.AssigneeIDs {
		b.Assignments = append(b.Assignments, domain.BookingAssignment{UserID: userID})
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return BookingResponse{}, fmt.Errorf("create booking: %w", err)
	}

	// The notification fires after the transaction committed and can never
	// roll the booking back.
	if s.notifs != nil {
		if policy.InitialApprovalStatus == domain.ApprovalApproved {
			s.notifs.Notify(b.ClientID, domain.NotifBookingConfirmed,
				"Booking confirmed",
				"Your booking is confirmed.",
				map[string]any{"booking_id": b.ID})
		} else {
			s.notifs.Notify(b.ClientID, domain.NotifBookingReceived,
				"Booking received",
				"Your booking was received and is pending review.",
				map[string]any{"booking_id": b.ID})
		}
	}

	return toResponse(b), nil
}

// Approve moves a pending booking to approved. Re-approving an approved
// booking is a no-op success; approving a rejected one is invalid.
func (s *Service) Approve(ctx context.Context, id int64, notes string) (BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return BookingResponse{}, err
	}
	switch b.ApprovalStatus {
	case domain.ApprovalApproved:
		return toResponse(b), nil
	case domain.ApprovalRejected:
		return BookingResponse{}, fmt.Errorf("booking %d is rejected: %w", id, domain.ErrInvalidTransition)
	}

	changed, err := s.bookings.UpdateApproval(ctx, id, domain.ApprovalPending, domain.ApprovalApproved, notes)
	if err != nil {
		return BookingResponse{}, err
	}
	if changed && s.notifs != nil {
		s.notifs.Notify(b.ClientID, domain.NotifBookingAccepted,
			"Booking accepted",
			"Your booking was accepted.",
			map[string]any{"booking_id": b.ID})
	}
	return s.get(ctx, id)
}

// Reject refuses a pending booking. Rejecting an approved booking is
// invalid; rejecting a rejected one is a no-op, mirroring Approve.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return BookingResponse{}, err
	}
	switch b.ApprovalStatus {
	case domain.ApprovalRejected:
		return toResponse(b), nil
	case domain.ApprovalApproved:
		return BookingResponse{}, fmt.Errorf("booking %d is approved: %w", id, domain.ErrInvalidTransition)
	}

	if _, err := s.bookings.UpdateApproval(ctx, id, domain.ApprovalPending, domain.ApprovalRejected, reason); err != nil {
		return BookingResponse{}, err
	}
	return s.get(ctx, id)
}

// Cancel is allowed in any approval state. It never refunds: refunds are a
// separate explicit payment action.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return BookingResponse{}, err
	}
	if b.FulfillmentStatus != domain.FulfillmentScheduled {
		return BookingResponse{}, fmt.Errorf("booking %d is %s: %w", id, b.FulfillmentStatus, domain.ErrInvalidTransition)
	}
	if _, err := s.bookings.UpdateFulfillment(ctx, id, domain.FulfillmentScheduled, domain.FulfillmentCanceled); err != nil {
		return BookingResponse{}, err
	}
	if s.notifs != nil {
		s.notifs.Notify(b.ClientID, domain.NotifBookingCancelled,
			"Booking cancelled",
			cancelBody(reason),
			map[string]any{"booking_id": b.ID})
	}
	return s.get(ctx, id)
}

func (s *Service) Complete(ctx context.Context, id int64) (BookingResponse, error) {
	changed, err := s.bookings.UpdateFulfillment(ctx, id, domain.FulfillmentScheduled, domain.FulfillmentCompleted)
	if err != nil {
		return BookingResponse{}, err
	}
	if !changed {
		b, err := s.bookings.GetByID(ctx, id)
		if err != nil {
			return BookingResponse{}, err
		}
		return BookingResponse{}, fmt.Errorf("booking %d is %s: %w", id, b.FulfillmentStatus, domain.ErrInvalidTransition)
	}
	return s.get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.bookings.Delete(ctx, id)
}

func (s *Service) GetBooking(ctx context.Context, id int64) (BookingResponse, error) {
	return s.get(ctx, id)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]BookingResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.bookings.ListByClient(ctx, clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out, nil
}

func (s *Service) get(ctx context.Context, id int64) (BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return BookingResponse{}, err
	}
	return toResponse(b), nil
}

func cancelBody(reason string) string {
	msg := "Your booking was cancelled."
	if reason != "" {
		msg += " Reason: " + reason
	}
	return msg
}
