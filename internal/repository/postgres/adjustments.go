package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
)

type adjustmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdjustmentRepository creates a new adjustment repository
func NewAdjustmentRepository(db *sql.DB, logger *zap.Logger) *adjustmentRepository {
	return &adjustmentRepository{
		db:     db,
		logger: logger,
	}
}

const adjustmentColumns = `
		id, object_id, object_type, type_id, type, description,
		subtotal, tax, total, amount, fee_reference, date_created
`

func (r *adjustmentRepository) ListByObject(ctx context.Context, objectID int64, objectType domain.ObjectType) ([]*domain.Adjustment, error) {
	query := `SELECT` + adjustmentColumns + `
		FROM order_adjustments
		WHERE object_id = $1 AND object_type = $2
		ORDER BY date_created ASC, id ASC
	`

	return r.list(ctx, query, objectID, string(objectType))
}

func (r *adjustmentRepository) ListItemFees(ctx context.Context, itemID int64) ([]*domain.Adjustment, error) {
	query := `SELECT` + adjustmentColumns + `
		FROM order_adjustments
		WHERE object_id = $1 AND object_type = $2 AND type = $3
		ORDER BY date_created ASC, id ASC
	`

	return r.list(ctx, query, itemID, string(domain.ObjectTypeOrderItem), string(domain.AdjustmentTypeFee))
}

func (r *adjustmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Adjustment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query adjustments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	adjustments := make([]*domain.Adjustment, 0)
	for rows.Next() {
		var adj domain.Adjustment
		var typeID sql.NullInt64
		var feeReference sql.NullString

		if err := rows.Scan(
			&adj.ID,
			&adj.ObjectID,
			&adj.ObjectType,
			&typeID,
			&adj.Type,
			&adj.Description,
			&adj.Subtotal,
			&adj.Tax,
			&adj.Total,
			&adj.Amount,
			&feeReference,
			&adj.DateCreated,
		); err != nil {
			r.logger.Error("Failed to scan adjustment", zap.Error(err))
			return nil, err
		}

		if typeID.Valid {
			adj.TypeID = &typeID.Int64
		}
		if feeReference.Valid {
			adj.FeeReference = &feeReference.String
		}
		adjustments = append(adjustments, &adj)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return adjustments, nil
}
