package postgres

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
)

type regionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRegionRepository creates a new region repository
func NewRegionRepository(db *sql.DB, logger *zap.Logger) *regionRepository {
	return &regionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *regionRepository) ListByCountry(ctx context.Context, countryCode string) ([]domain.Region, error) {
	query := `
		SELECT country_code, code, name
		FROM regions
		WHERE country_code = $1
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, strings.ToUpper(countryCode))
	if err != nil {
		r.logger.Error("Failed to query regions", zap.String("country", countryCode), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	regions := make([]domain.Region, 0)
	for rows.Next() {
		var region domain.Region
		if err := rows.Scan(&region.CountryCode, &region.Code, &region.Name); err != nil {
			r.logger.Error("Failed to scan region", zap.Error(err))
			return nil, err
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return regions, nil
}
