package app

import (
	httpH "github.com/yungbote/neurobridge-navigation/internal/http/handlers"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
	"gorm.io/gorm"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Navigation *httpH.NavigationHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Navigation: httpH.NewNavigationHandler(services.Navigation),
	}
}
