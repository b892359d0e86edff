package postgres

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
)

func TestTaxRateRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaxRateRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "country_code", "region_label", "scope", "amount", "status"}).
		AddRow(int64(1), "US", "CA", "region", "7.25", "active").
		AddRow(int64(2), "", "", "global", "20", "inactive")
	mock.ExpectQuery(`FROM tax_rates ORDER BY position ASC, id ASC`).WillReturnRows(rows)

	rates, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, rates, 2)
	require.NotNil(t, rates[0].ID)
	assert.Equal(t, int64(1), *rates[0].ID)
	assert.Equal(t, domain.TaxRateScopeRegion, rates[0].Scope)
	assert.True(t, decimal.RequireFromString("7.25").Equal(rates[0].Amount))
	assert.Equal(t, domain.TaxRateStatusInactive, rates[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxRateRepository_ReplaceAll(t *testing.T) {
	existing := int64(5)
	input := []domain.TaxRateRow{
		{ID: &existing, CountryCode: "FR", Scope: domain.TaxRateScopeGlobal, Amount: decimal.NewFromInt(20), Status: domain.TaxRateStatusActive},
		{CountryCode: "US", RegionLabel: "CA", Scope: domain.TaxRateScopeRegion, Amount: decimal.RequireFromString("7.25"), Status: domain.TaxRateStatusActive},
	}

	t.Run("updates, inserts and commits", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaxRateRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM tax_rates WHERE NOT \(id = ANY\(\$1\)\)`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`UPDATE tax_rates SET .* WHERE id = \$1`).
			WithArgs(int64(5), "FR", "", "global", sqlmock.AnyArg(), "active", 0, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO tax_rates \(country_code, .*\) .* RETURNING id`).
			WithArgs("US", "CA", "region", sqlmock.AnyArg(), "active", 1, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(6)))
		mock.ExpectCommit()

		saved, err := repo.ReplaceAll(context.Background(), input)

		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.Equal(t, int64(5), *saved[0].ID)
		require.NotNil(t, saved[1].ID)
		assert.Equal(t, int64(6), *saved[1].ID)
		assert.Nil(t, input[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaxRateRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM tax_rates`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE tax_rates`).
			WillReturnError(stderrors.New("constraint violation"))
		mock.ExpectRollback()

		saved, err := repo.ReplaceAll(context.Background(), input)

		assert.Nil(t, saved)
		assert.EqualError(t, err, "constraint violation")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown ID is inserted with a fresh ID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaxRateRepository(db, zap.NewNop())

		stale := int64(99)
		rows := []domain.TaxRateRow{
			{ID: &stale, CountryCode: "DE", Scope: domain.TaxRateScopeGlobal, Amount: decimal.NewFromInt(19), Status: domain.TaxRateStatusActive},
		}

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM tax_rates`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE tax_rates SET .* WHERE id = \$1`).
			WithArgs(int64(99), "DE", "", "global", sqlmock.AnyArg(), "active", 0, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`INSERT INTO tax_rates \(country_code, .*\) .* RETURNING id`).
			WithArgs("DE", "", "global", sqlmock.AnyArg(), "active", 0, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectCommit()

		saved, err := repo.ReplaceAll(context.Background(), rows)

		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Equal(t, int64(7), *saved[0].ID)
		assert.Equal(t, int64(99), stale)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table deletes everything", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaxRateRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM tax_rates`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		saved, err := repo.ReplaceAll(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, saved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
