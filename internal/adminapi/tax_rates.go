package adminapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/service"
	"github.com/jafarshop/storeadmin/internal/taxtable"
)

const (
	taxRatesPath = "/v1/admin/tax-rates"
	regionsPath  = "/v1/admin/regions/"
)

// FetchTaxRates loads the stored tax rate table
func (c *Client) FetchTaxRates(ctx context.Context) ([]domain.TaxRateRow, error) {
	var resp service.TaxRatesResponse
	if err := c.do(ctx, "fetch tax rates", http.MethodGet, taxRatesPath, nil, &resp); err != nil {
		return nil, err
	}
	return service.TaxRateRows(resp.TaxRates), nil
}

// SaveTaxRates replaces the stored table and returns the saved rows in
// submission order
func (c *Client) SaveTaxRates(ctx context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error) {
	req := service.SaveTaxRatesRequest{TaxRates: service.NewTaxRateDTOs(rows)}

	var resp service.TaxRatesResponse
	if err := c.do(ctx, "save tax rates", http.MethodPut, taxRatesPath, req, &resp); err != nil {
		return nil, err
	}
	return service.TaxRateRows(resp.TaxRates), nil
}

// Regions looks up the subdivisions of a country
func (c *Client) Regions(ctx context.Context, country string) (taxtable.RegionOptions, error) {
	var resp service.RegionsResponse
	if err := c.do(ctx, "region lookup", http.MethodGet, regionsPath+url.PathEscape(country), nil, &resp); err != nil {
		return taxtable.RegionOptions{}, err
	}
	return resp.Options(), nil
}
