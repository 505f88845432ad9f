package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/ignatzorin/contracts-backend/internal/config"
	domainrepo "github.com/ignatzorin/contracts-backend/internal/domain/repository"
	"github.com/ignatzorin/contracts-backend/internal/http/handlers"
	"github.com/ignatzorin/contracts-backend/internal/http/middleware"
)

func SetupRouter(
	cfg *config.Config,
	tokens middleware.TokenParser,
	profiles domainrepo.ProfileReader,
	rateStore limiter.Store,
	contractHandler *handlers.ContractHandler,
	paymentHandler *handlers.PaymentHandler,
	reportHandler *handlers.ReportHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// WebSocket авторизуется токеном из query, заголовок браузер не передаёт.
	api.GET("/ws", wsHandler.Handle)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens, profiles))
	{
		protected.GET("/contracts", contractHandler.ListContracts)
		protected.GET("/contracts/:id", middleware.UUIDValidator("id"), contractHandler.GetContract)
		protected.GET("/jobs/unpaid", contractHandler.ListUnpaid)
	}

	money := protected.Group("")
	money.Use(middleware.RateLimitMiddleware(rateStore, cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		money.POST("/jobs/:job_id/pay", middleware.UUIDValidator("job_id"), paymentHandler.PayJob)
		money.POST("/balances/deposit/:userId", middleware.UUIDValidator("userId"), paymentHandler.Deposit)
	}

	admin := protected.Group("/admin")
	{
		admin.GET("/best-profession", reportHandler.BestProfession)
		admin.GET("/best-clients", reportHandler.BestClients)
		admin.GET("/reports/export", reportHandler.Export)
	}

	return r
}
