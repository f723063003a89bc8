package catalog

import (
	"context"

	"photodesk/internal/domain"
)

type CatalogReader interface {
	GetPackage(ctx context.Context, id int64) (*domain.Package, error)
	GetPackagePrice(ctx context.Context, packageID int64, country domain.Country) (*domain.PackagePrice, error)
	GetAddOn(ctx context.Context, id int64) (*domain.AddOn, error)
	GetAddOnPrice(ctx context.Context, addOnID int64, country domain.Country) (*domain.AddOnPrice, error)
	ListServices(ctx context.Context) ([]domain.CatalogService, error)
	ListPackages(ctx context.Context, serviceID int64) ([]domain.Package, error)
	ListAddOns(ctx context.Context, serviceID int64) ([]domain.AddOn, error)
}
