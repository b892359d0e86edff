package taxtable

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/taxrate"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

type mockRegionSource struct {
	options map[string]RegionOptions
	err     error
	release chan struct{}
}

func (m *mockRegionSource) Regions(ctx context.Context, country string) (RegionOptions, error) {
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return RegionOptions{}, m.err
	}
	if opts, ok := m.options[country]; ok {
		return opts, nil
	}
	return RegionOptions{Country: country, NoRegions: true}, nil
}

type mockSaver struct {
	err       error
	submitted []domain.TaxRateRow
	nextID    int64
}

func (m *mockSaver) SaveTaxRates(ctx context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error) {
	m.submitted = rows
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.TaxRateRow, len(rows))
	for i, row := range rows {
		if row.ID == nil {
			m.nextID++
			id := m.nextID
			row.ID = &id
		}
		out[i] = row
	}
	return out, nil
}

func int64Ptr(v int64) *int64 { return &v }

func seedRows() []domain.TaxRateRow {
	return []domain.TaxRateRow{
		{ID: int64Ptr(1), CountryCode: "FR", Scope: domain.TaxRateScopeGlobal, Amount: decimal.NewFromInt(20), Status: domain.TaxRateStatusActive},
		{ID: int64Ptr(2), CountryCode: "US", RegionLabel: "CA", Scope: domain.TaxRateScopeRegion, Amount: decimal.RequireFromString("7.25"), Status: domain.TaxRateStatusActive},
		{ID: int64Ptr(3), CountryCode: "DE", Scope: domain.TaxRateScopeGlobal, Amount: decimal.NewFromInt(19), Status: domain.TaxRateStatusInactive},
	}
}

func newTestController(regions RegionSource, saver Saver) *Controller {
	if regions == nil {
		regions = &mockRegionSource{}
	}
	if saver == nil {
		saver = &mockSaver{nextID: 100}
	}
	return NewController(regions, saver, zap.NewNop())
}

func keyOf(t *testing.T, s *Session, country string) string {
	t.Helper()
	for _, r := range s.Rates.Records() {
		if r.Country == country {
			return r.Key
		}
	}
	t.Fatalf("no rate for %s", country)
	return ""
}

func receive(t *testing.T, ch <-chan RegionResult) RegionResult {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(time.Second):
		t.Fatal("region lookup did not finish")
	}
	return RegionResult{}
}

func TestController_NewSession(t *testing.T) {
	c := newTestController(nil, nil)

	s := c.NewSession(seedRows())

	assert.Equal(t, 3, s.Rates.Len())
	assert.False(t, s.Dirty)
	assert.False(t, s.ConfirmOnExit())
	assert.True(t, s.Draft.Unsaved)

	records := s.Rates.Records()
	assert.True(t, records[0].Global)
	assert.False(t, records[1].Global)
	assert.Equal(t, "CA", records[1].Region)
}

func TestController_AddRate(t *testing.T) {
	t.Run("successful add marks the session dirty and resets the draft", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())
		draftKey := s.Draft.Key
		s.Draft.Country = "GB"
		c.SetDraftAmount(s, decimal.NewFromInt(20))

		added, err := c.AddRate(s, nil)

		require.NoError(t, err)
		assert.Equal(t, draftKey, added.Key)
		assert.Equal(t, 4, s.Rates.Len())
		assert.True(t, s.Dirty)
		assert.True(t, s.ConfirmOnExit())
		assert.NotEqual(t, draftKey, s.Draft.Key)
		assert.Equal(t, "", s.Draft.Country)
	})

	t.Run("duplicate leaves the session unchanged", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())
		s.Draft.Country = "FR"
		c.SetDraftAmount(s, decimal.NewFromInt(5))

		_, err := c.AddRate(s, nil)

		var vErr *errors.ErrValidation
		require.True(t, stderrors.As(err, &vErr))
		assert.Equal(t, errors.CodeDuplicateRate, vErr.Code)
		assert.Equal(t, 3, s.Rates.Len())
		assert.False(t, s.Dirty)
		assert.Equal(t, "FR", s.Draft.Country)
	})

	t.Run("declined zero amount leaves the session unchanged", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(nil)
		s.Draft.Country = "GB"

		_, err := c.AddRate(s, func(*errors.Warning) bool { return false })

		var w *errors.Warning
		require.True(t, stderrors.As(err, &w))
		assert.Equal(t, 0, s.Rates.Len())
		assert.False(t, s.Dirty)
	})

	t.Run("region rate for a country with a global rate", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())
		s.Draft.Country = "FR"
		c.SetDraftRegion(s, "Corse")
		c.SetDraftAmount(s, decimal.NewFromInt(10))

		added, err := c.AddRate(s, nil)

		require.NoError(t, err)
		assert.False(t, added.Global)
	})
}

func TestController_StatusChanges(t *testing.T) {
	t.Run("deactivate then activate marks dirty", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())
		key := keyOf(t, s, "FR")

		require.NoError(t, c.Deactivate(s, key))
		assert.True(t, s.Dirty)

		s.Dirty = false
		require.NoError(t, c.Activate(s, key))
		assert.True(t, s.Dirty)
	})

	t.Run("rejected activation does not mark dirty", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(append(seedRows(), domain.TaxRateRow{
			ID: int64Ptr(4), CountryCode: "FR", Scope: domain.TaxRateScopeGlobal,
			Amount: decimal.NewFromInt(5), Status: domain.TaxRateStatusInactive,
		}))
		key := s.Rates.Records()[3].Key

		err := c.Activate(s, key)

		require.Error(t, err)
		assert.False(t, s.Dirty)
		got, _ := s.Rates.Get(key)
		assert.Equal(t, domain.TaxRateStatusInactive, got.Status)
	})

	t.Run("remove marks dirty", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())

		require.NoError(t, c.Remove(s, keyOf(t, s, "DE")))

		assert.Equal(t, 2, s.Rates.Len())
		assert.True(t, s.Dirty)
	})

	t.Run("unknown key is not found", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(nil)

		var nf *errors.ErrNotFound
		assert.True(t, stderrors.As(c.Remove(s, "nope"), &nf))
		assert.False(t, s.Dirty)
	})
}

func TestController_Visible(t *testing.T) {
	c := newTestController(nil, nil)
	s := c.NewSession(seedRows())

	assert.Len(t, c.Visible(s), 2)
	assert.Len(t, c.SetShowAll(s, true), 3)
	assert.Len(t, c.SetShowAll(s, false), 2)
}

func TestController_BulkApply(t *testing.T) {
	t.Run("applies status and refilters", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())

		visible, err := c.BulkApply(s, []string{keyOf(t, s, "FR"), keyOf(t, s, "US")}, domain.TaxRateStatusInactive)

		require.NoError(t, err)
		assert.Empty(t, visible)
		assert.True(t, s.Dirty)
		for _, r := range s.Rates.Records() {
			assert.False(t, r.Selected)
		}
	})

	t.Run("empty selection changes nothing", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())

		visible, err := c.BulkApply(s, nil, domain.TaxRateStatusInactive)

		require.NoError(t, err)
		assert.Len(t, visible, 2)
		assert.False(t, s.Dirty)
	})

	// Bulk activation does not run the duplicate check; both FR rates end up active.
	t.Run("bulk activation bypasses the duplicate check", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(append(seedRows(), domain.TaxRateRow{
			ID: int64Ptr(4), CountryCode: "FR", Scope: domain.TaxRateScopeGlobal,
			Amount: decimal.NewFromInt(5), Status: domain.TaxRateStatusInactive,
		}))
		keys := make([]string, 0)
		for _, r := range s.Rates.Records() {
			keys = append(keys, r.Key)
		}

		visible, err := c.BulkApply(s, keys, domain.TaxRateStatusActive)

		require.NoError(t, err)
		assert.Len(t, visible, 4)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(seedRows())

		_, err := c.BulkApply(s, nil, domain.TaxRateStatus("archived"))

		assert.Error(t, err)
	})
}

func TestController_Regions(t *testing.T) {
	t.Run("applies the lookup result", func(t *testing.T) {
		regions := &mockRegionSource{options: map[string]RegionOptions{
			"US": {Country: "US", Regions: []domain.Region{{CountryCode: "US", Code: "CA", Name: "California"}}},
		}}
		c := newTestController(regions, nil)
		s := c.NewSession(nil)

		res := receive(t, c.SelectCountry(context.Background(), s, "US"))
		applied, err := c.ApplyRegions(s, res)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, "US", s.Draft.Country)
		require.Len(t, s.Regions.Regions, 1)
		assert.Equal(t, "CA", s.Regions.Regions[0].Code)
	})

	t.Run("all countries has no regions", func(t *testing.T) {
		c := newTestController(nil, nil)
		s := c.NewSession(nil)

		res := receive(t, c.SelectCountry(context.Background(), s, taxrate.AllCountries))
		applied, err := c.ApplyRegions(s, res)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, s.Regions.NoRegions)
	})

	t.Run("stale result is discarded", func(t *testing.T) {
		regions := &mockRegionSource{options: map[string]RegionOptions{
			"US": {Country: "US", Regions: []domain.Region{{CountryCode: "US", Code: "CA"}}},
			"CA": {Country: "CA", Regions: []domain.Region{{CountryCode: "CA", Code: "ON"}}},
		}}
		c := newTestController(regions, nil)
		s := c.NewSession(nil)

		first := c.SelectCountry(context.Background(), s, "US")
		second := c.SelectCountry(context.Background(), s, "CA")

		applied, err := c.ApplyRegions(s, receive(t, first))
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Empty(t, s.Regions.Regions)

		applied, err = c.ApplyRegions(s, receive(t, second))
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, "ON", s.Regions.Regions[0].Code)
	})

	t.Run("form stays usable while the lookup runs", func(t *testing.T) {
		regions := &mockRegionSource{release: make(chan struct{})}
		c := newTestController(regions, nil)
		s := c.NewSession(nil)

		ch := c.SelectCountry(context.Background(), s, "GB")
		c.SetDraftAmount(s, decimal.NewFromInt(20))
		close(regions.release)

		_, err := c.ApplyRegions(s, receive(t, ch))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(20).Equal(s.Draft.Amount))
	})

	t.Run("failed lookup leaves the session untouched", func(t *testing.T) {
		regions := &mockRegionSource{err: stderrors.New("connection refused")}
		c := newTestController(regions, nil)
		s := c.NewSession(nil)

		applied, err := c.ApplyRegions(s, receive(t, c.SelectCountry(context.Background(), s, "US")))

		assert.False(t, applied)
		var syncErr *errors.ErrSync
		require.True(t, stderrors.As(err, &syncErr))
		assert.Equal(t, RegionOptions{}, s.Regions)
	})
}

func TestController_Save(t *testing.T) {
	t.Run("successful save clears dirty and records IDs", func(t *testing.T) {
		saver := &mockSaver{nextID: 100}
		c := newTestController(nil, saver)
		s := c.NewSession(seedRows())
		s.Draft.Country = "GB"
		c.SetDraftAmount(s, decimal.NewFromInt(20))
		added, err := c.AddRate(s, nil)
		require.NoError(t, err)
		require.True(t, s.Dirty)

		require.NoError(t, c.Save(context.Background(), s))

		assert.False(t, s.Dirty)
		assert.False(t, s.ConfirmOnExit())
		assert.Len(t, saver.submitted, 4)
		got, _ := s.Rates.Get(added.Key)
		require.NotNil(t, got.ID)
		assert.Equal(t, int64(101), *got.ID)
	})

	t.Run("failed save keeps dirty and the table", func(t *testing.T) {
		saver := &mockSaver{err: stderrors.New("503")}
		c := newTestController(nil, saver)
		s := c.NewSession(seedRows())
		require.NoError(t, c.Deactivate(s, keyOf(t, s, "FR")))
		before := s.Rates.Records()

		err := c.Save(context.Background(), s)

		var syncErr *errors.ErrSync
		require.True(t, stderrors.As(err, &syncErr))
		assert.True(t, s.Dirty)
		assert.Equal(t, before, s.Rates.Records())
	})

	t.Run("failed save of a clean session stays clean", func(t *testing.T) {
		saver := &mockSaver{err: stderrors.New("503")}
		c := newTestController(nil, saver)
		s := c.NewSession(seedRows())

		require.Error(t, c.Save(context.Background(), s))

		assert.False(t, s.Dirty)
	})
}
