package client

import (
	"context"
	"fmt"

	"photodesk/internal/domain"
	"photodesk/internal/pkg/validator"
)

type Service struct {
	clients ClientRepository
}

func NewService(clients ClientRepository) *Service {
	return &Service{clients: clients}
}

// CreateClient registers a CRM record. The country is fixed at creation:
// bookings and deliveries freeze prices against it, so it never changes
// afterwards.
func (s *Service) CreateClient(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	if _, ok := domain.PolicyFor(req.Country); !ok {
		return nil, fmt.Errorf("unsupported country %q: %w", req.Country, domain.ErrValidation)
	}
	c := &domain.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Country: req.Country,
		Notes:   req.Notes,
	}
	if fields := validator.Validate(c); fields != nil {
		return nil, fmt.Errorf("invalid client fields %v: %w", fields, domain.ErrValidation)
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

func (s *Service) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *Service) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	return s.clients.List(ctx, limit, offset)
}

func (s *Service) UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.Notes = req.Notes
	if fields := validator.Validate(c); fields != nil {
		return nil, fmt.Errorf("invalid client fields %v: %w", fields, domain.ErrValidation)
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update client %d: %w", id, err)
	}
	return c, nil
}
