package app

import (
	apphttp "github.com/yungbote/neurobridge-navigation/internal/http"
	"github.com/yungbote/neurobridge-navigation/internal/observability"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:               log,
		ServiceName:       cfg.ServiceName,
		CORSOrigins:       cfg.CORSOrigins,
		Metrics:           metrics,
		HealthHandler:     handlers.Health,
		NavigationHandler: handlers.Navigation,
	})
}
