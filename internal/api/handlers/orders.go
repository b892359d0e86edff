package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/order"
	"github.com/jafarshop/storeadmin/internal/service"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

// OrderLoader loads an order with everything attached to it
type OrderLoader interface {
	LoadOrder(ctx context.Context, id int64) (*order.Order, error)
}

// HandleGetOrder handles GET /v1/admin/orders/:id
func HandleGetOrder(orders OrderLoader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orderID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		o, err := orders.LoadOrder(c.Request.Context(), orderID)
		if err != nil {
			var notFound *errors.ErrNotFound
			if stderrors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to load order", zap.Int64("order_id", orderID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, service.NewOrderSummary(o))
	}
}
