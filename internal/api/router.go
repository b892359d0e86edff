package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/api/handlers"
	"github.com/jafarshop/storeadmin/internal/api/middleware"
	"github.com/jafarshop/storeadmin/internal/config"
	"github.com/jafarshop/storeadmin/internal/logger"
	"github.com/jafarshop/storeadmin/internal/repository"
	"github.com/jafarshop/storeadmin/internal/service"
)

// NewRouter creates and configures the Gin router. regionCache may be nil.
func NewRouter(cfg *config.Config, repos *repository.Repositories, regionCache service.RegionCache, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	orderService := service.NewOrderService(repos, cfg.Orders, log)
	taxRateService := service.NewTaxRateService(repos, regionCache, log)

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(cfg.API.KeyHash, log))
		{
			adminRoutes.GET("/orders/:id", handlers.HandleGetOrder(orderService, log))
			adminRoutes.GET("/tax-rates", handlers.HandleListTaxRates(taxRateService, log))
			adminRoutes.PUT("/tax-rates", handlers.HandleSaveTaxRates(taxRateService, log))
			adminRoutes.GET("/regions/:country", handlers.HandleGetRegions(taxRateService, log))
		}
	}

	return router
}
