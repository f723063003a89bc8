package domain

type Country string

const (
	CountryKZ Country = "KZ"
	CountryAE Country = "AE"
)

// CountryPolicy drives the market-dependent branches of the booking and
// download workflows. Adding a market is a new row here, not new code.
type CountryPolicy struct {
	Currency               string
	InitialApprovalStatus  ApprovalStatus
	RequiresUpfrontPayment bool
	AutoApproveOnPayment   bool
}

var countryPolicies = map[Country]CountryPolicy{
	CountryKZ: {
		Currency:               "KZT",
		InitialApprovalStatus:  ApprovalApproved,
		RequiresUpfrontPayment: true,
		AutoApproveOnPayment:   true,
	},
	CountryAE: {
		Currency:               "AED",
		InitialApprovalStatus:  ApprovalPending,
		RequiresUpfrontPayment: false,
		AutoApproveOnPayment:   false,
	},
}

func PolicyFor(c Country) (CountryPolicy, bool) {
	p, ok := countryPolicies[c]
	return p, ok
}

func (c Country) Valid() bool {
	_, ok := countryPolicies[c]
	return ok
}
