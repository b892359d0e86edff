package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, parent, order_number, status, type, user_id, customer_id, email, ip,
		       gateway, mode, currency, payment_key, subtotal, discount, tax, total,
		       date_created, date_modified, date_completed, date_refundable
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	var parent sql.NullInt64
	var dateCompleted, dateRefundable sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&parent,
		&order.OrderNumber,
		&order.Status,
		&order.Type,
		&order.UserID,
		&order.CustomerID,
		&order.Email,
		&order.IP,
		&order.Gateway,
		&order.Mode,
		&order.Currency,
		&order.PaymentKey,
		&order.Subtotal,
		&order.Discount,
		&order.Tax,
		&order.Total,
		&order.DateCreated,
		&order.DateModified,
		&dateCompleted,
		&dateRefundable,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Int64("order_id", id), zap.Error(err))
		return nil, err
	}

	if parent.Valid {
		order.ParentID = &parent.Int64
	}
	if dateCompleted.Valid {
		order.DateCompleted = &dateCompleted.Time
	}
	if dateRefundable.Valid {
		order.DateRefundable = &dateRefundable.Time
	}

	return &order, nil
}
