package repository

import (
	"context"

	"photodesk/internal/domain"
)

// OwnerStore resolves payment owners across the two owning aggregates.
type OwnerStore struct {
	bookings   *BookingRepository
	selections *SelectionRepository
}

func NewOwnerStore(bookings *BookingRepository, selections *SelectionRepository) *OwnerStore {
	return &OwnerStore{bookings: bookings, selections: selections}
}

func (s *OwnerStore) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *OwnerStore) GetSelection(ctx context.Context, id int64) (*domain.DownloadSelection, error) {
	return s.selections.GetByID(ctx, id)
}
