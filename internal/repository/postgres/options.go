package postgres

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"
)

type optionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOptionRepository creates a new option repository
func NewOptionRepository(db *sql.DB, logger *zap.Logger) *optionRepository {
	return &optionRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns an option's value, or "" when it is not set
func (r *optionRepository) Get(ctx context.Context, name string) (string, error) {
	query := `SELECT value FROM options WHERE name = $1`

	var value string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.logger.Error("Failed to read option", zap.String("name", name), zap.Error(err))
		return "", err
	}

	return value, nil
}

// GetBool interprets an option as a checkbox value
func (r *optionRepository) GetBool(ctx context.Context, name string) (bool, error) {
	value, err := r.Get(ctx, name)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	default:
		return false, nil
	}
}
