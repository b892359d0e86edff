package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
)

type orderItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *sql.DB, logger *zap.Logger) *orderItemRepository {
	return &orderItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, price_id, cart_index, type, status,
		       quantity, amount, subtotal, discount, tax, total, date_created
		FROM order_items
		WHERE order_id = $1
		ORDER BY cart_index ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		var priceID sql.NullInt64

		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&priceID,
			&item.CartIndex,
			&item.Type,
			&item.Status,
			&item.Quantity,
			&item.Amount,
			&item.Subtotal,
			&item.Discount,
			&item.Tax,
			&item.Total,
			&item.DateCreated,
		); err != nil {
			r.logger.Error("Failed to scan order item", zap.Error(err))
			return nil, err
		}

		if priceID.Valid {
			item.PriceID = &priceID.Int64
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
