package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
)

type taxRateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTaxRateRepository creates a new tax rate repository
func NewTaxRateRepository(db *sql.DB, logger *zap.Logger) *taxRateRepository {
	return &taxRateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taxRateRepository) List(ctx context.Context) ([]*domain.TaxRateRow, error) {
	query := `
		SELECT id, country_code, region_label, scope, amount, status
		FROM tax_rates
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query tax rates", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	rates := make([]*domain.TaxRateRow, 0)
	for rows.Next() {
		var rate domain.TaxRateRow
		var id int64

		if err := rows.Scan(
			&id,
			&rate.CountryCode,
			&rate.RegionLabel,
			&rate.Scope,
			&rate.Amount,
			&rate.Status,
		); err != nil {
			r.logger.Error("Failed to scan tax rate", zap.Error(err))
			return nil, err
		}

		rate.ID = &id
		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rates, nil
}

// ReplaceAll deletes stored rates missing from rows, updates the ones that
// carry a stored ID and inserts the rest in one transaction. A row whose ID
// is not stored gets a fresh ID.
func (r *taxRateRepository) ReplaceAll(ctx context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin tax rate transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	keep := make([]int64, 0, len(rows))
	for _, row := range rows {
		if row.ID != nil {
			keep = append(keep, *row.ID)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tax_rates WHERE NOT (id = ANY($1))`, pq.Array(keep)); err != nil {
		r.logger.Error("Failed to delete removed tax rates", zap.Error(err))
		return nil, err
	}

	update := `
		UPDATE tax_rates
		SET country_code = $2, region_label = $3, scope = $4, amount = $5,
		    status = $6, position = $7, updated_at = $8
		WHERE id = $1
	`
	insert := `
		INSERT INTO tax_rates (country_code, region_label, scope, amount, status, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	saved := make([]domain.TaxRateRow, 0, len(rows))
	for i, row := range rows {
		if row.ID != nil {
			result, err := tx.ExecContext(ctx, update,
				*row.ID,
				row.CountryCode,
				row.RegionLabel,
				string(row.Scope),
				row.Amount,
				string(row.Status),
				i,
				now,
			)
			if err != nil {
				r.logger.Error("Failed to update tax rate", zap.Int64("id", *row.ID), zap.Error(err))
				return nil, err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return nil, err
			}
			if affected > 0 {
				saved = append(saved, row)
				continue
			}
			// ID no longer stored, insert as a new row
			r.logger.Warn("Tax rate ID not found, inserting as new", zap.Int64("id", *row.ID))
		}

		var id int64
		if err := tx.QueryRowContext(ctx, insert,
			row.CountryCode,
			row.RegionLabel,
			string(row.Scope),
			row.Amount,
			string(row.Status),
			i,
			now,
		).Scan(&id); err != nil {
			r.logger.Error("Failed to insert tax rate", zap.Error(err))
			return nil, err
		}
		row.ID = &id
		saved = append(saved, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tax rates: %w", err)
	}

	return saved, nil
}
