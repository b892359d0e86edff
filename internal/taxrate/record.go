package taxrate

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storeadmin/internal/domain"
)

// AllCountries is the submitted country value meaning "every country"
const AllCountries = "*"

// Record is one tax rate rule in an editing session
type Record struct {
	// Key identifies the record within the session, saved or not
	Key string
	// ID is the stored identifier; nil until the record has been saved
	ID      *int64
	Country string
	Region  string
	// Global is set when the rate covers the whole country (no region)
	Global bool
	Amount decimal.Decimal
	Status domain.TaxRateStatus
	// Unsaved marks the draft row being composed; committed rows never carry it
	Unsaved bool
	// Selected marks the record for a bulk action; never persisted
	Selected bool
}

// NewDraft returns an empty draft row
func NewDraft() Record {
	return Record{
		Key:     uuid.NewString(),
		Amount:  decimal.Zero,
		Status:  domain.TaxRateStatusActive,
		Unsaved: true,
	}
}

// FromRow hydrates a record from a stored row
func FromRow(row domain.TaxRateRow) Record {
	return Record{
		Key:     uuid.NewString(),
		ID:      row.ID,
		Country: row.CountryCode,
		Region:  row.RegionLabel,
		Global:  row.Scope == domain.TaxRateScopeGlobal,
		Amount:  row.Amount,
		Status:  row.Status,
	}
}

// Row converts the record into its stored shape
func (r Record) Row() domain.TaxRateRow {
	scope := domain.TaxRateScopeRegion
	if r.Global {
		scope = domain.TaxRateScopeGlobal
	}
	return domain.TaxRateRow{
		ID:          r.ID,
		CountryCode: r.Country,
		RegionLabel: r.Region,
		Scope:       scope,
		Amount:      r.Amount,
		Status:      r.Status,
	}
}

// IsActive reports whether the record is active
func (r Record) IsActive() bool {
	return r.Status == domain.TaxRateStatusActive
}

// ScopeLabel names the scope the rate applies to: the country, or
// "country: region" when a region is set.
func (r Record) ScopeLabel() string {
	country := r.Country
	if country == "" {
		country = "All countries"
	}
	if r.Region == "" {
		return country
	}
	return country + ": " + r.Region
}
