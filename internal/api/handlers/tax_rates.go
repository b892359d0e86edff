package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/service"
	"github.com/jafarshop/storeadmin/internal/taxtable"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

// TaxRateManager reads and replaces the tax rate table
type TaxRateManager interface {
	List(ctx context.Context) ([]domain.TaxRateRow, error)
	SaveTaxRates(ctx context.Context, rows []domain.TaxRateRow) ([]domain.TaxRateRow, error)
	Regions(ctx context.Context, country string) (taxtable.RegionOptions, error)
}

// HandleListTaxRates handles GET /v1/admin/tax-rates
func HandleListTaxRates(rates TaxRateManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := rates.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list tax rates", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tax rates"})
			return
		}

		c.JSON(http.StatusOK, service.TaxRatesResponse{TaxRates: service.NewTaxRateDTOs(rows)})
	}
}

// HandleSaveTaxRates handles PUT /v1/admin/tax-rates
func HandleSaveTaxRates(rates TaxRateManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SaveTaxRatesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		saved, err := rates.SaveTaxRates(c.Request.Context(), service.TaxRateRows(req.TaxRates))
		if err != nil {
			var validation *errors.ErrValidation
			if stderrors.As(err, &validation) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Message, "code": validation.Code})
				return
			}
			logger.Error("Failed to save tax rates", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save tax rates"})
			return
		}

		c.JSON(http.StatusOK, service.TaxRatesResponse{TaxRates: service.NewTaxRateDTOs(saved)})
	}
}

// HandleGetRegions handles GET /v1/admin/regions/:country
func HandleGetRegions(rates TaxRateManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		country := strings.TrimSpace(c.Param("country"))

		opts, err := rates.Regions(c.Request.Context(), country)
		if err != nil {
			logger.Error("Failed to look up regions", zap.String("country", country), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up regions"})
			return
		}

		c.JSON(http.StatusOK, service.NewRegionsResponse(opts))
	}
}
