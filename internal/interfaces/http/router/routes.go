package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/venta/backend/internal/infrastructure/logger"
	"github.com/venta/backend/internal/interfaces/http/dto"
	"github.com/venta/backend/internal/interfaces/http/handler"
	"github.com/venta/backend/internal/interfaces/http/middleware"
)

// Config selects the optional parts of the middleware chain
type Config struct {
	ServiceName    string
	TracingEnabled bool
	Meter          metric.Meter // nil disables HTTP metrics
	BodyLimit      int64        // 0 uses middleware.DefaultBodyLimit
}

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	Sellers  *handler.SellerHandler
	Branches *handler.BranchHandler
	System   *handler.SystemHandler
}

// NewEngine builds the gin engine with the full middleware chain and routes:
//
//	GET   /health/live, /health/ready
//	      /api/v1/sellers[/:id[/deactivate|/reactivate]]
//	      /api/v1/branches[/:id[/deactivate|/activate]]
//	GET   /api/v1/system/info
func NewEngine(cfg Config, h Handlers, log *zap.Logger) *gin.Engine {
	engine := gin.New()

	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = middleware.DefaultBodyLimit
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.BodyLimit(bodyLimit),
	)
	if cfg.Meter != nil {
		engine.Use(middleware.HTTPMetrics(cfg.Meter, log))
	}

	if h.System != nil {
		health := engine.Group("/health")
		health.GET("/live", h.System.Ping)
		health.GET("/ready", h.System.Ready)
	}

	r := NewRouter(engine)
	if h.Sellers != nil {
		r.Register(NewResource("/sellers").
			POST("", h.Sellers.Register).
			GET("", h.Sellers.List).
			GET("/:id", h.Sellers.GetByID).
			PATCH("/:id", h.Sellers.Update).
			POST("/:id/deactivate", h.Sellers.Deactivate).
			POST("/:id/reactivate", h.Sellers.Reactivate))
	}
	if h.Branches != nil {
		r.Register(NewResource("/branches").
			POST("", h.Branches.Create).
			GET("", h.Branches.List).
			GET("/:id", h.Branches.GetByID).
			POST("/:id/deactivate", h.Branches.Deactivate).
			POST("/:id/activate", h.Branches.Activate))
	}
	if h.System != nil {
		r.Register(NewResource("/system").
			GET("/info", h.System.GetSystemInfo))
	}
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	return engine
}
