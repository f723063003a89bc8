package catalog

import (
	"context"
	"errors"
	"fmt"

	"photodesk/internal/domain"
)

type AddOnRequest struct {
	AddOnID  int64 `json:"add_on_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,min=1"`
}

type Service struct {
	catalog CatalogReader
}

func NewService(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// BuildQuote reads the current catalog prices for the given country and
// returns an immutable quote. Side-effect free; the booking workflow is
// responsible for freezing the result exactly once. Any dangling reference
// fails the whole quote and nothing is persisted.
func (s *Service) BuildQuote(ctx context.Context, packageID int64, country domain.Country, addOns []AddOnRequest) (*domain.Quote, error) {
	pkg, err := s.catalog.GetPackage(ctx, packageID)
	if err != nil {
		return nil, catalogErr(err)
	}
	pkgPrice, err := s.catalog.GetPackagePrice(ctx, packageID, country)
	if err != nil {
		return nil, catalogErr(err)
	}

	q := &domain.Quote{
		PackageID: packageID,
		Country:   country,
		UnitPrice: pkgPrice.Amount,
		Currency:  pkgPrice.Currency,
	}

	seen := make(map[int64]bool, len(addOns))
	for _, req := range addOns {
		if req.Quantity < 1 {
			return nil, fmt.Errorf("add-on %d quantity %d: %w", req.AddOnID, req.Quantity, domain.ErrValidation)
		}
		if seen[req.AddOnID] {
			return nil, fmt.Errorf("add-on %d requested twice: %w", req.AddOnID, domain.ErrValidation)
		}
		seen[req.AddOnID] = true

		addOn, err := s.catalog.GetAddOn(ctx, req.AddOnID)
		if err != nil {
			return nil, catalogErr(err)
		}
		if addOn.ServiceID != pkg.ServiceID {
			return nil, fmt.Errorf("add-on %d belongs to service %d, package to %d: %w",
				addOn.ID, addOn.ServiceID, pkg.ServiceID, domain.ErrCatalogReference)
		}
		price, err := s.catalog.GetAddOnPrice(ctx, req.AddOnID, country)
		if err != nil {
			return nil, catalogErr(err)
		}
		q.AddOns = append(q.AddOns, domain.QuoteAddOn{
			AddOnID:    req.AddOnID,
			Quantity:   req.Quantity,
			UnitPrice:  price.Amount,
			TotalPrice: domain.RoundMoney(price.Amount * float64(req.Quantity)),
			Currency:   price.Currency,
		})
	}
	return q, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	return s.catalog.ListServices(ctx)
}

func (s *Service) ListPackages(ctx context.Context, serviceID int64) ([]domain.Package, error) {
	return s.catalog.ListPackages(ctx, serviceID)
}

func (s *Service) ListAddOns(ctx context.Context, serviceID int64) ([]domain.AddOn, error) {
	return s.catalog.ListAddOns(ctx, serviceID)
}

// catalogErr folds missing rows into the catalog-reference taxonomy so the
// booking workflow surfaces one client-error class for any dangling id.
func catalogErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrCatalogReference, err)
	}
	return err
}
