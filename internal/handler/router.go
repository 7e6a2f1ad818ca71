package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"prize-wheel/internal/handler/api"
	"prize-wheel/internal/handler/middleware"
	"prize-wheel/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Wheel     *api.WheelHandler
	Wallet    *api.WalletHandler
	PromoCode *api.PromoCodeHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.NewRequestLogger(logger).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/wheel", Handler: h.Wheel.GetWheel},
			{Method: http.MethodPost, Path: "/spins", Handler: h.Wheel.Spin},
			{Method: http.MethodGet, Path: "/spins/current", Handler: h.Wheel.GetCurrentSpin},
			{Method: http.MethodGet, Path: "/wallet", Handler: h.Wallet.GetWallet},
			{Method: http.MethodGet, Path: "/rewards", Handler: h.Wallet.ListRewards},
		})

		bonuses := apiGroup.Group("/bonuses")
		addRoutes(bonuses, []route{
			{Method: http.MethodPost, Path: "/daily", Handler: h.Wallet.ClaimDaily},
			{Method: http.MethodPost, Path: "/subscription", Handler: h.Wallet.StartSubscription},
		})

		promoCodes := apiGroup.Group("/promo-codes")
		addRoutes(promoCodes, []route{
			{Method: http.MethodGet, Path: "/:code", Handler: h.PromoCode.Check},
			{Method: http.MethodPost, Path: "/redeem", Handler: h.PromoCode.Redeem},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
