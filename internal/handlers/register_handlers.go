package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/cuadre_caja_app/cmd/docs"
	"github.com/SscSPs/cuadre_caja_app/internal/core/domain"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/dto"
	"github.com/SscSPs/cuadre_caja_app/internal/middleware"
	"github.com/SscSPs/cuadre_caja_app/internal/platform/config"
)

var defaultCodeRate = limiter.Rate{Period: time.Minute, Limit: 30}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.Ok("OK", nil))
	})

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	// Code issuing and redemption share one per-user budget.
	codeGuard := middleware.RateLimit(newCodeLimiter(cfg.RateLimit))

	registerCashBoxRoutes(v1.Group("/caja-chica"), domain.PettyCash, service.Reconciliation, service.Cancellation, codeGuard)
	registerCashBoxRoutes(v1.Group("/caja-general"), domain.GeneralCash, service.Reconciliation, service.Cancellation, codeGuard)
	registerMovementRoutes(v1, service.Movement)
	registerCorteRoutes(v1, service.Corte, service.Cancellation, codeGuard)
}

func newCodeLimiter(formatted string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid rate limit, using default", slog.String("rate", formatted), slog.String("error", err.Error()))
		rate = defaultCodeRate
	}
	return limiter.New(memory.NewStore(), rate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
