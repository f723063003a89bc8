package repository

import (
	"context"
	"errors"
	"fmt"

	"photodesk/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetPackage(ctx context.Context, id int64) (*domain.Package, error) {
	var p domain.Package
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("package %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) GetPackagePrice(ctx context.Context, packageID int64, country domain.Country) (*domain.PackagePrice, error) {
	var p domain.PackagePrice
	err := r.db.WithContext(ctx).
		Where("package_id = ? AND country = ?", packageID, country).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("package %d price for %s: %w", packageID, country, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) GetAddOn(ctx context.Context, id int64) (*domain.AddOn, error) {
	var a domain.AddOn
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("add-on %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *CatalogRepository) GetAddOnPrice(ctx context.Context, addOnID int64, country domain.Country) (*domain.AddOnPrice, error) {
	var p domain.AddOnPrice
	err := r.db.WithContext(ctx).
		Where("add_on_id = ? AND country = ?", addOnID, country).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("add-on %d price for %s: %w", addOnID, country, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	var rows []domain.CatalogService
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&rows).Error
	return rows, err
}

func (r *CatalogRepository) ListPackages(ctx context.Context, serviceID int64) ([]domain.Package, error) {
	q := r.db.WithContext(ctx).Preload("Prices").Where("active = ?", true)
	if serviceID > 0 {
		q = q.Where("service_id = ?", serviceID)
	}
	var rows []domain.Package
	err := q.Order("id").Find(&rows).Error
	return rows, err
}

func (r *CatalogRepository) ListAddOns(ctx context.Context, serviceID int64) ([]domain.AddOn, error) {
	q := r.db.WithContext(ctx).Preload("Prices").Where("active = ?", true)
	if serviceID > 0 {
		q = q.Where("service_id = ?", serviceID)
	}
	var rows []domain.AddOn
	err := q.Order("id").Find(&rows).Error
	return rows, err
}
