package repository

import (
	"context"
	"errors"
	"fmt"

	"photodesk/internal/domain"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	var rows []domain.Client
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, err
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	res := r.db.WithContext(ctx).Model(&domain.Client{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":    c.Name,
		"email":   c.Email,
		"phone":   c.Phone,
		"country": c.Country,
		"notes":   c.Notes,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("client %d: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}
