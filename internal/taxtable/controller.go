package taxtable

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/taxrate"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

// RegionSource looks up the subdivisions of a country
type RegionSource interface {
	Regions(ctx context.Context, country string) (RegionOptions, error)
}

// Saver persists the full tax rate table. The returned rows are in the same
// order as the submitted ones, with IDs assigned to new rows.
type Saver interface {
	SaveTaxRates(ctx context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error)
}

type Controller struct {
	regions RegionSource
	saver   Saver
	logger  *zap.Logger
}

// NewController creates a new tax rate table controller
func NewController(regions RegionSource, saver Saver, logger *zap.Logger) *Controller {
	return &Controller{
		regions: regions,
		saver:   saver,
		logger:  logger,
	}
}

// NewSession hydrates a session from stored rows
func (c *Controller) NewSession(seed []domain.TaxRateRow) *Session {
	records := make([]taxrate.Record, 0, len(seed))
	for _, row := range seed {
		records = append(records, taxrate.FromRow(row))
	}
	return &Session{
		Rates: taxrate.NewCollection(records...),
		Draft: taxrate.NewDraft(),
	}
}

// SelectCountry sets the draft row's country and starts looking up its
// regions. The result arrives on the returned channel and must be handed to
// ApplyRegions from the goroutine that owns the session.
func (c *Controller) SelectCountry(ctx context.Context, s *Session, country string) <-chan RegionResult {
	s.regionToken++
	token := s.regionToken

	s.Draft.Country = country
	s.Draft.Region = ""
	s.Regions = RegionOptions{}

	out := make(chan RegionResult, 1)

	if country == "" || country == taxrate.AllCountries {
		out <- RegionResult{Token: token, Options: RegionOptions{Country: country, NoRegions: true}}
		close(out)
		return out
	}

	go func() {
		defer close(out)
		opts, err := c.regions.Regions(ctx, country)
		out <- RegionResult{Token: token, Options: opts, Err: err}
	}()

	return out
}

// ApplyRegions installs a finished region lookup. Results of a lookup that
// was superseded by a later SelectCountry are dropped and false is returned.
// A failed lookup leaves the session untouched.
func (c *Controller) ApplyRegions(s *Session, res RegionResult) (bool, error) {
	if res.Token != s.regionToken {
		c.logger.Debug("Discarding stale region lookup",
			zap.Uint64("token", res.Token),
			zap.Uint64("latest", s.regionToken),
		)
		return false, nil
	}

	if res.Err != nil {
		c.logger.Warn("Region lookup failed", zap.String("country", s.Draft.Country), zap.Error(res.Err))
		return false, asSyncError("region lookup", res.Err)
	}

	s.Regions = res.Options
	return true, nil
}

// SetDraftRegion sets the draft row's region
func (c *Controller) SetDraftRegion(s *Session, region string) {
	s.Draft.Region = region
}

// SetDraftAmount sets the draft row's rate percentage
func (c *Controller) SetDraftAmount(s *Session, amount decimal.Decimal) {
	s.Draft.Amount = amount
}

// AddRate commits the draft row to the table. Validation failures and a
// declined zero-amount warning leave the session as it was.
func (c *Controller) AddRate(s *Session, confirm taxrate.ConfirmFunc) (taxrate.Record, error) {
	added, err := s.Rates.Add(s.Draft, confirm)
	if err != nil {
		c.logger.Debug("Tax rate not added", zap.String("scope", s.Draft.ScopeLabel()), zap.Error(err))
		return taxrate.Record{}, err
	}

	s.Dirty = true
	s.Draft = taxrate.NewDraft()
	s.Regions = RegionOptions{}

	return added, nil
}

// Activate activates a rate, refusing if it would duplicate an active scope
func (c *Controller) Activate(s *Session, key string) error {
	if err := s.Rates.Activate(key); err != nil {
		return err
	}
	s.Dirty = true
	return nil
}

// Deactivate deactivates a rate
func (c *Controller) Deactivate(s *Session, key string) error {
	if err := s.Rates.Deactivate(key); err != nil {
		return err
	}
	s.Dirty = true
	return nil
}

// Remove deletes a rate from the table
func (c *Controller) Remove(s *Session, key string) error {
	if err := s.Rates.Remove(key); err != nil {
		return err
	}
	s.Dirty = true
	return nil
}

// Select toggles a rate's bulk selection
func (c *Controller) Select(s *Session, key string, selected bool) error {
	return s.Rates.Select(key, selected)
}

// BulkApply sets status on the rates with the given keys and returns the
// refreshed visible list. The selection is cleared afterwards.
func (c *Controller) BulkApply(s *Session, keys []string, status domain.TaxRateStatus) ([]taxrate.Record, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid tax rate status: %q", status)
	}

	s.Rates.SelectOnly(keys)
	if n := s.Rates.BulkApplyStatus(status); n > 0 {
		s.Dirty = true
		c.logger.Debug("Bulk status applied", zap.String("status", string(status)), zap.Int("count", n))
	}
	s.Rates.SelectOnly(nil)

	return c.Visible(s), nil
}

// SetShowAll toggles whether inactive rates are listed and returns the
// refreshed visible list.
func (c *Controller) SetShowAll(s *Session, showAll bool) []taxrate.Record {
	s.ShowAll = showAll
	return c.Visible(s)
}

// Visible returns the rates to list: active ones only, unless ShowAll is set
func (c *Controller) Visible(s *Session) []taxrate.Record {
	if s.ShowAll {
		return s.Rates.Records()
	}
	active := domain.TaxRateStatusActive
	return s.Rates.Where(taxrate.Filter{Status: &active})
}

// Save submits the whole table. On success the saved IDs are recorded and
// the session is no longer dirty; on failure nothing changes.
func (c *Controller) Save(ctx context.Context, s *Session) error {
	records := s.Rates.Records()
	rows := make([]domain.TaxRateRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}

	saved, err := c.saver.SaveTaxRates(ctx, rows)
	if err != nil {
		c.logger.Error("Failed to save tax rates", zap.Error(err))
		return asSyncError("save tax rates", err)
	}
	if len(saved) != len(rows) {
		err := fmt.Errorf("saved %d tax rates, submitted %d", len(saved), len(rows))
		c.logger.Error("Failed to save tax rates", zap.Error(err))
		return &errors.ErrSync{Op: "save tax rates", Err: err}
	}

	for i, row := range saved {
		if row.ID != nil {
			_ = s.Rates.SetID(records[i].Key, *row.ID)
		}
	}
	s.Dirty = false

	c.logger.Info("Tax rates saved", zap.Int("count", len(saved)))
	return nil
}

func asSyncError(op string, err error) error {
	var syncErr *errors.ErrSync
	if stderrors.As(err, &syncErr) {
		return err
	}
	return &errors.ErrSync{Op: op, Err: err}
}
