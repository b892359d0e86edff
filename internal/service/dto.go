package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/order"
	"github.com/jafarshop/storeadmin/internal/taxtable"
)

// TaxRateDTO is one row of the tax rate table on the wire
type TaxRateDTO struct {
	ID          *int64          `json:"id"`
	CountryCode string          `json:"country_code"`
	RegionLabel string          `json:"region_label"`
	Scope       string          `json:"scope" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status" binding:"required"`
}

// SaveTaxRatesRequest submits the full tax rate table
type SaveTaxRatesRequest struct {
	TaxRates []TaxRateDTO `json:"tax_rates" binding:"required,dive"`
}

type TaxRatesResponse struct {
	TaxRates []TaxRateDTO `json:"tax_rates"`
}

type RegionDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type RegionsResponse struct {
	Country   string      `json:"country"`
	Regions   []RegionDTO `json:"regions"`
	NoRegions bool        `json:"no_regions"`
}

type AdjustmentDTO struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	FeeReference *string         `json:"fee_reference,omitempty"`
}

type OrderItemDTO struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
}

type AddressDTO struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderSummaryResponse is an order's financial breakdown
type OrderSummaryResponse struct {
	ID            int64                    `json:"id"`
	DisplayNumber string                   `json:"number"`
	Status        string                   `json:"status"`
	Complete      bool                     `json:"complete"`
	Currency      string                   `json:"currency"`
	Subtotal      decimal.Decimal          `json:"subtotal"`
	Discount      decimal.Decimal          `json:"discount"`
	Tax           decimal.Decimal          `json:"tax"`
	Total         decimal.Decimal          `json:"total"`
	TaxRate       decimal.Decimal          `json:"tax_rate"`
	DateCreated   time.Time                `json:"date_created"`
	Items         []OrderItemDTO           `json:"items"`
	Discounts     []AdjustmentDTO          `json:"discounts"`
	Taxes         []AdjustmentDTO          `json:"taxes"`
	Credits       []AdjustmentDTO          `json:"credits"`
	Fees          map[string]AdjustmentDTO `json:"fees"`
	Address       AddressDTO               `json:"address"`
}

// NewTaxRateDTO converts a stored row for the wire
func NewTaxRateDTO(row domain.TaxRateRow) TaxRateDTO {
	return TaxRateDTO{
		ID:          row.ID,
		CountryCode: row.CountryCode,
		RegionLabel: row.RegionLabel,
		Scope:       string(row.Scope),
		Amount:      row.Amount,
		Status:      string(row.Status),
	}
}

func NewTaxRateDTOs(rows []domain.TaxRateRow) []TaxRateDTO {
	out := make([]TaxRateDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewTaxRateDTO(row))
	}
	return out
}

// Row converts a wire row back to a domain row
func (d TaxRateDTO) Row() domain.TaxRateRow {
	return domain.TaxRateRow{
		ID:          d.ID,
		CountryCode: d.CountryCode,
		RegionLabel: d.RegionLabel,
		Scope:       domain.TaxRateScope(d.Scope),
		Amount:      d.Amount,
		Status:      domain.TaxRateStatus(d.Status),
	}
}

func TaxRateRows(dtos []TaxRateDTO) []domain.TaxRateRow {
	out := make([]domain.TaxRateRow, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.Row())
	}
	return out
}

// NewRegionsResponse converts region options for the wire
func NewRegionsResponse(opts taxtable.RegionOptions) RegionsResponse {
	regions := make([]RegionDTO, 0, len(opts.Regions))
	for _, r := range opts.Regions {
		regions = append(regions, RegionDTO{Code: r.Code, Name: r.Name})
	}
	return RegionsResponse{
		Country:   opts.Country,
		Regions:   regions,
		NoRegions: opts.NoRegions,
	}
}

// Options converts a regions response back to region options
func (r RegionsResponse) Options() taxtable.RegionOptions {
	regions := make([]domain.Region, 0, len(r.Regions))
	for _, reg := range r.Regions {
		regions = append(regions, domain.Region{CountryCode: r.Country, Code: reg.Code, Name: reg.Name})
	}
	return taxtable.RegionOptions{
		Country:   r.Country,
		Regions:   regions,
		NoRegions: r.NoRegions || len(regions) == 0,
	}
}

// NewOrderSummary builds the wire breakdown of an order
func NewOrderSummary(o *order.Order) OrderSummaryResponse {
	header := o.Header()
	breakdown := o.Breakdown()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
			Subtotal:    item.Subtotal,
			Discount:    item.Discount,
			Tax:         item.Tax,
			Total:       item.Total,
			Status:      item.Status,
		})
	}

	fees := make(map[string]AdjustmentDTO, len(breakdown.Fees))
	for key, fee := range breakdown.Fees {
		fees[key] = newAdjustmentDTO(fee)
	}

	addr := o.Address()

	return OrderSummaryResponse{
		ID:            header.ID,
		DisplayNumber: o.DisplayNumber(),
		Status:        string(header.Status),
		Complete:      o.IsComplete(),
		Currency:      header.Currency,
		Subtotal:      header.Subtotal,
		Discount:      header.Discount,
		Tax:           header.Tax,
		Total:         header.Total,
		TaxRate:       breakdown.TaxRate,
		DateCreated:   header.DateCreated,
		Items:         items,
		Discounts:     newAdjustmentDTOs(breakdown.Discounts),
		Taxes:         newAdjustmentDTOs(breakdown.Taxes),
		Credits:       newAdjustmentDTOs(breakdown.Credits),
		Fees:          fees,
		Address: AddressDTO{
			Name:       addr.Name,
			Address:    addr.Address,
			Address2:   addr.Address2,
			City:       addr.City,
			Region:     addr.Region,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		},
	}
}

func newAdjustmentDTO(a domain.Adjustment) AdjustmentDTO {
	return AdjustmentDTO{
		ID:           a.ID,
		Type:         string(a.Type),
		Description:  a.Description,
		Amount:       a.Amount,
		Subtotal:     a.Subtotal,
		Tax:          a.Tax,
		Total:        a.Total,
		FeeReference: a.FeeReference,
	}
}

func newAdjustmentDTOs(adjs []domain.Adjustment) []AdjustmentDTO {
	out := make([]AdjustmentDTO, 0, len(adjs))
	for _, a := range adjs {
		out = append(out, newAdjustmentDTO(a))
	}
	return out
}
