package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/neurobridge-navigation/internal/http/handlers"
	httpMW "github.com/yungbote/neurobridge-navigation/internal/http/middleware"
	"github.com/yungbote/neurobridge-navigation/internal/observability"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	HealthHandler     *httpH.HealthHandler
	NavigationHandler *httpH.NavigationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	if h := cfg.NavigationHandler; h != nil {
		nav := api.Group("/navigation")
		{
			nav.POST("/secondary", h.BuildSecondary)
			nav.POST("/primary", h.BuildPrimary)

			nav.GET("/layouts/:view/:level/:source", h.GetLayout)
			nav.PUT("/layouts/:view/:level/:source", h.PutLayout)
			nav.DELETE("/layouts/:view/:level/:source", h.DeleteLayout)

			nav.GET("/extensions", h.ListExtensions)
			nav.POST("/extensions", h.CreateExtension)
			nav.GET("/extensions/:id", h.GetExtension)
			nav.DELETE("/extensions/:id", h.DeleteExtension)
		}
	}

	return r
}
