package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

type addressRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *sql.DB, logger *zap.Logger) *addressRepository {
	return &addressRepository{
		db:     db,
		logger: logger,
	}
}

func (r *addressRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Address, error) {
	query := `
		SELECT id, order_id, name, address, address2, city, region, postal_code, country
		FROM order_addresses
		WHERE order_id = $1
		ORDER BY id ASC
		LIMIT 1
	`

	var addr domain.Address
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&addr.ID,
		&addr.OrderID,
		&addr.Name,
		&addr.Address,
		&addr.Address2,
		&addr.City,
		&addr.Region,
		&addr.PostalCode,
		&addr.Country,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "address", ID: strconv.FormatInt(orderID, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get order address", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, err
	}

	return &addr, nil
}
