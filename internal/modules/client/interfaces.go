package client

import (
	"context"

	"photodesk/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, limit, offset int) ([]domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
}
