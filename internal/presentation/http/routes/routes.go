package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/config"
	domainRepo "github.com/sangkips/mi-inventory-api/internal/domain/repository"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/handler"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/middleware"
	"github.com/sangkips/mi-inventory-api/pkg/metrics"
	"github.com/sangkips/mi-inventory-api/pkg/utils"
)

// Permissions carried in the access token.
const (
	PermissionManageSales     = "manage-sales"
	PermissionManageCreditors = "manage-creditors"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session  *handler.SessionHandler
	Industry *handler.IndustryHandler
	Sale     *handler.SaleHandler
	Creditor *handler.CreditorHandler
	Printer  *handler.PrinterHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *metrics.Collector
}

// Setup creates the Gin router and registers all routes. Background
// sweeps owned by the router stop when ctx is done.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/industries", h.Industry.List)
		v1.GET("/industries/:industry", h.Industry.Get)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			Requests: deps.Cfg.RateLimit.Requests,
			Window:   time.Duration(deps.Cfg.RateLimit.Duration) * time.Second,
			Burst:    deps.Cfg.RateLimit.Requests,
		})
		go rateLimiter.Run(ctx, 5*time.Minute)
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h)
		registerSaleRoutes(protected, h, deps)
		registerCreditorRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/sessions", h.Session.Open)

	current := protected.Group("/sessions/current")
	current.Use(middleware.SessionMiddleware())
	{
		current.GET("", h.Session.Get)
		current.DELETE("", h.Session.Close)
		current.POST("/sidebar/toggle", h.Session.ToggleSidebar)
		current.PUT("/industry", h.Session.SelectIndustry)
		current.PUT("/company", h.Session.SetCompanyName)
		current.PUT("/department", h.Session.SelectDepartment)
		current.DELETE("/department", h.Session.ClearDepartment)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission(PermissionManageSales))
	sales.Use(middleware.SessionMiddleware())
	{
		sales.GET("/current", h.Sale.Current)
		sales.POST("/current/items", h.Sale.AddItem)
		sales.PUT("/current/items/:item_id/quantity", h.Sale.SetQuantity)
		sales.PUT("/current/items/:item_id/status", h.Sale.SetLineStatus)
		sales.DELETE("/current/items/:item_id", h.Sale.RemoveItem)
		sales.PUT("/current/discount", h.Sale.ApplyDiscount)
		sales.PUT("/current/service", h.Sale.SetServiceDetails)
		sales.POST("/current/clear", h.Sale.Clear)
		sales.POST("/current/finalize", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Finalize)

		sales.GET("/history", h.Sale.History)
		sales.GET("/history/:id", h.Sale.HistorySale)
		sales.GET("/summary", h.Report.SalesSummary)
	}
}

func registerCreditorRoutes(protected *gin.RouterGroup, h *Handlers) {
	creditors := protected.Group("/creditors")
	creditors.Use(middleware.RequirePermission(PermissionManageCreditors))
	creditors.Use(middleware.SessionMiddleware())
	{
		creditors.GET("", h.Creditor.List)
		creditors.POST("", h.Creditor.Create)
		creditors.GET("/:id", h.Creditor.Get)
		creditors.GET("/:id/balance", h.Creditor.Balance)
		creditors.GET("/:id/settlements", h.Creditor.Settlements)
		creditors.POST("/:id/settlements", h.Creditor.RecordSettlement)
		creditors.GET("/:id/statement", h.Creditor.Statement)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission(PermissionManageSales))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", middleware.SessionMiddleware(), h.Printer.PrintReceipt)
	}
}
