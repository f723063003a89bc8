package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photodesk/internal/domain"
)

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) GetPackage(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockCatalogReader) GetPackagePrice(ctx context.Context, packageID int64, country domain.Country) (*domain.PackagePrice, error) {
	args := m.Called(ctx, packageID, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PackagePrice), args.Error(1)
}

func (m *MockCatalogReader) GetAddOn(ctx context.Context, id int64) (*domain.AddOn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AddOn), args.Error(1)
}

func (m *MockCatalogReader) GetAddOnPrice(ctx context.Context, addOnID int64, country domain.Country) (*domain.AddOnPrice, error) {
	args := m.Called(ctx, addOnID, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AddOnPrice), args.Error(1)
}

func (m *MockCatalogReader) ListServices(ctx context.Context) ([]domain.CatalogService, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CatalogService), args.Error(1)
}

func (m *MockCatalogReader) ListPackages(ctx context.Context, serviceID int64) ([]domain.Package, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *MockCatalogReader) ListAddOns(ctx context.Context, serviceID int64) ([]domain.AddOn, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).([]domain.AddOn), args.Error(1)
}

func TestBuildQuote_PackageWithAddOns(t *testing.T) {
	reader := new(MockCatalogReader)
	svc := NewService(reader)

	reader.On("GetPackage", mock.Anything, int64(1)).
		Return(&domain.Package{ID: 1, ServiceID: 10}, nil)
	reader.On("GetPackagePrice", mock.Anything, int64(1), domain.CountryKZ).
		Return(&domain.PackagePrice{PackageID: 1, Country: domain.CountryKZ, Amount: 100, Currency: "KZT"}, nil)
	reader.On("GetAddOn", mock.Anything, int64(5)).
		Return(&domain.AddOn{ID: 5, ServiceID: 10}, nil)
	reader.On("GetAddOnPrice", mock.Anything, int64(5), domain.CountryKZ).
		Return(&domain.AddOnPrice{AddOnID: 5, Country: domain.CountryKZ, Amount: 20, Currency: "KZT"}, nil)

	q, err := svc.BuildQuote(context.Background(), 1, domain.CountryKZ, []AddOnRequest{{AddOnID: 5, Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, 100.0, q.UnitPrice)
	assert.Equal(t, "KZT", q.Currency)
	require.Len(t, q.AddOns, 1)
	assert.Equal(t, 40.0, q.AddOns[0].TotalPrice)
	assert.Equal(t, 140.0, q.Total())
}

func TestBuildQuote_AddOnFromOtherService(t *testing.T) {
	reader := new(MockCatalogReader)
	svc := NewService(reader)

	reader.On("GetPackage", mock.Anything, int64(1)).
		Return(&domain.Package{ID: 1, ServiceID: 10}, nil)
	reader.On("GetPackagePrice", mock.Anything, int64(1), domain.CountryKZ).
		Return(&domain.PackagePrice{PackageID: 1, Country: domain.CountryKZ, Amount: 100, Currency: "KZT"}, nil)
	reader.On("GetAddOn", mock.Anything, int64(5)).
		Return(&domain.AddOn{ID: 5, ServiceID: 99}, nil)

	_, err := svc.BuildQuote(context.Background(), 1, domain.CountryKZ, []AddOnRequest{{AddOnID: 5, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrCatalogReference)
}

func TestBuildQuote_MissingPriceForCountry(t *testing.T) {
	reader := new(MockCatalogReader)
	svc := NewService(reader)

	reader.On("GetPackage", mock.Anything, int64(1)).
		Return(&domain.Package{ID: 1, ServiceID: 10}, nil)
	reader.On("GetPackagePrice", mock.Anything, int64(1), domain.CountryAE).
		Return(nil, domain.ErrNotFound)

	_, err := svc.BuildQuote(context.Background(), 1, domain.CountryAE, nil)
	assert.ErrorIs(t, err, domain.ErrCatalogReference)
}

func TestBuildQuote_DuplicateAddOn(t *testing.T) {
	reader := new(MockCatalogReader)
	svc := NewService(reader)

	reader.On("GetPackage", mock.Anything, int64(1)).
		Return(&domain.Package{ID: 1, ServiceID: 10}, nil)
	reader.On("GetPackagePrice", mock.Anything, int64(1), domain.CountryKZ).
		Return(&domain.PackagePrice{PackageID: 1, Country: domain.CountryKZ, Amount: 100, Currency: "KZT"}, nil)
	reader.On("GetAddOn", mock.Anything, int64(5)).
		Return(&domain.AddOn{ID: 5, ServiceID: 10}, nil)
	reader.On("GetAddOnPrice", mock.Anything, int64(5), domain.CountryKZ).
		Return(&domain.AddOnPrice{AddOnID: 5, Country: domain.CountryKZ, Amount: 20, Currency: "KZT"}, nil)

	_, err := svc.BuildQuote(context.Background(), 1, domain.CountryKZ,
		[]AddOnRequest{{AddOnID: 5, Quantity: 1}, {AddOnID: 5, Quantity: 2}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuildQuote_ZeroQuantity(t *testing.T) {
	reader := new(MockCatalogReader)
	svc := NewService(reader)

	reader.On("GetPackage", mock.Anything, int64(1)).
		Return(&domain.Package{ID: 1, ServiceID: 10}, nil)
	reader.On("GetPackagePrice", mock.Anything, int64(1), domain.CountryKZ).
		Return(&domain.PackagePrice{PackageID: 1, Country: domain.CountryKZ, Amount: 100, Currency: "KZT"}, nil)

	_, err := svc.BuildQuote(context.Background(), 1, domain.CountryKZ, []AddOnRequest{{AddOnID: 5, Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
