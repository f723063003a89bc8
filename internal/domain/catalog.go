package domain

import "time"

// CatalogService is a photography service line (weddings, portraits, ...).
// Packages and add-ons both hang off a service; an add-on can only be booked
// together with a package of the same service.
type CatalogService struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CatalogService) TableName() string { return "catalog_services" }

type Package struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	ServiceID   int64          `gorm:"index;not null" json:"service_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Active      bool           `gorm:"default:true" json:"active"`
	Prices      []PackagePrice `gorm:"foreignKey:PackageID" json:"prices,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Package) TableName() string { return "packages" }

type PackagePrice struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	PackageID int64   `gorm:"uniqueIndex:idx_package_prices_pkg_country;not null" json:"package_id"`
	Country   Country `gorm:"type:varchar(2);uniqueIndex:idx_package_prices_pkg_country;not null" json:"country"`
	Amount    float64 `gorm:"not null" json:"amount"`
	Currency  string  `gorm:"type:varchar(3);not null" json:"currency"`
}

func (PackagePrice) TableName() string { return "package_prices" }

type AddOn struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	ServiceID int64        `gorm:"index;not null" json:"service_id"`
	Name      string       `gorm:"not null" json:"name"`
	Active    bool         `gorm:"default:true" json:"active"`
	Prices    []AddOnPrice `gorm:"foreignKey:AddOnID" json:"prices,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (AddOn) TableName() string { return "add_ons" }

type AddOnPrice struct {
	ID       int64   `gorm:"primaryKey" json:"id"`
	AddOnID  int64   `gorm:"uniqueIndex:idx_add_on_prices_addon_country;not null" json:"add_on_id"`
	Country  Country `gorm:"type:varchar(2);uniqueIndex:idx_add_on_prices_addon_country;not null" json:"country"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"type:varchar(3);not null" json:"currency"`
}

func (AddOnPrice) TableName() string { return "add_on_prices" }

// Quote is the immutable price snapshot taken at booking-creation time. It is
// never persisted as such; the booking freezes its values into its own rows.
type Quote struct {
	PackageID int64
	Country   Country
	UnitPrice float64
	Currency  string
	AddOns    []QuoteAddOn
}

type QuoteAddOn struct {
	AddOnID    int64
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
	Currency   string
}

func (q Quote) Total() float64 {
	total := q.UnitPrice
	for _, a := range q.AddOns {
		total += a.TotalPrice
	}
	return roundMoney(total)
}
