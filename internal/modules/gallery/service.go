package gallery

import (
	"context"
	"fmt"

	"photodesk/internal/domain"
)

type Service struct {
	events  EventRepository
	clients ClientReader
}

func NewService(events EventRepository, clients ClientReader) *Service {
	return &Service{events: events, clients: clients}
}

// CreateEvent records a shoot for a client. The event inherits the client's
// country so downstream deliveries resolve the right policy.
func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client %d: %w", req.ClientID, err)
	}
	event := &domain.Event{
		ClientID:  client.ID,
		BookingID: req.BookingID,
		Country:   client.Country,
		Title:     req.Title,
		ShotAt:    req.ShotAt,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]domain.Event, error) {
	return s.events.ListByClient(ctx, clientID)
}

func (s *Service) AddPhotos(ctx context.Context, eventID int64, req AddPhotosRequest) ([]domain.Photo, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	photos := make([]domain.Photo, 0, len(req.Photos))
	for _, in := range req.Photos {
		photos = append(photos, domain.Photo{
			EventID: event.ID,
			FileKey: in.FileKey,
			Caption: in.Caption,
		})
	}
	if err := s.events.AddPhotos(ctx, photos); err != nil {
		return nil, fmt.Errorf("add photos: %w", err)
	}
	return photos, nil
}

func (s *Service) ListPhotos(ctx context.Context, eventID int64) ([]domain.Photo, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.events.ListPhotos(ctx, eventID)
}

func (s *Service) DeletePhoto(ctx context.Context, eventID, photoID int64) error {
	return s.events.DeletePhoto(ctx, eventID, photoID)
}
