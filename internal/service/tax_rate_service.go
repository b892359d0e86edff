package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/repository"
	"github.com/jafarshop/storeadmin/internal/taxtable"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

// RegionCache stores region lookups between requests
type RegionCache interface {
	Get(ctx context.Context, country string) ([]domain.Region, bool, error)
	Set(ctx context.Context, country string, regions []domain.Region) error
}

type taxRateService struct {
	repos  *repository.Repositories
	cache  RegionCache
	logger *zap.Logger
}

// NewTaxRateService creates a new tax rate service. cache may be nil.
func NewTaxRateService(repos *repository.Repositories, cache RegionCache, logger *zap.Logger) *taxRateService {
	return &taxRateService{
		repos:  repos,
		cache:  cache,
		logger: logger,
	}
}

// List returns the stored tax rate table in display order
func (s *taxRateService) List(ctx context.Context) ([]domain.TaxRateRow, error) {
	rows, err := s.repos.TaxRate.List(ctx)
	if err != nil {
		return nil, err
	}
	return derefAll(rows), nil
}

// SaveTaxRates replaces the stored table with rows
func (s *taxRateService) SaveTaxRates(ctx context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error) {
	for i, row := range rows {
		if err := validateRow(row); err != nil {
			s.logger.Warn("Rejected tax rate row", zap.Int("index", i), zap.Error(err))
			return nil, err
		}
	}

	saved, err := s.repos.TaxRate.ReplaceAll(ctx, rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tax rates replaced", zap.Int("count", len(saved)))
	return saved, nil
}

// Regions returns the subdivisions of a country, consulting the cache first.
// Cache failures are logged and otherwise ignored.
func (s *taxRateService) Regions(ctx context.Context, country string) (taxtable.RegionOptions, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" || country == "*" {
		return taxtable.RegionOptions{Country: country, NoRegions: true}, nil
	}

	if s.cache != nil {
		regions, ok, err := s.cache.Get(ctx, country)
		if err != nil {
			s.logger.Warn("Region cache unavailable", zap.String("country", country), zap.Error(err))
		}
		if ok {
			return regionOptions(country, regions), nil
		}
	}

	regions, err := s.repos.Region.ListByCountry(ctx, country)
	if err != nil {
		return taxtable.RegionOptions{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, country, regions); err != nil {
			s.logger.Warn("Failed to cache regions", zap.String("country", country), zap.Error(err))
		}
	}

	return regionOptions(country, regions), nil
}

func regionOptions(country string, regions []domain.Region) taxtable.RegionOptions {
	return taxtable.RegionOptions{
		Country:   country,
		Regions:   regions,
		NoRegions: len(regions) == 0,
	}
}

func validateRow(row domain.TaxRateRow) error {
	if !row.Status.IsValid() {
		return &errors.ErrValidation{
			Code:    errors.CodeInvalidStatus,
			Message: fmt.Sprintf("invalid tax rate status: %q", row.Status),
		}
	}
	if !row.Scope.IsValid() {
		return &errors.ErrValidation{
			Code:    errors.CodeInvalidScope,
			Message: fmt.Sprintf("invalid tax rate scope: %q", row.Scope),
		}
	}
	if row.Amount.IsNegative() {
		return &errors.ErrValidation{
			Code:    errors.CodeNegativeAmount,
			Message: "Tax rate amount cannot be negative",
		}
	}
	if row.Scope == domain.TaxRateScopeRegion {
		if row.CountryCode == "" {
			return &errors.ErrValidation{
				Code:    errors.CodeEmptyCountry,
				Message: "A regional tax rate needs a country",
			}
		}
		if row.RegionLabel == "" {
			return &errors.ErrValidation{
				Code:    errors.CodeEmptyRegion,
				Message: "A regional tax rate needs a region",
			}
		}
	}
	return nil
}
