package app

import (
	"github.com/yungbote/neurobridge-navigation/internal/navigation"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
	"github.com/yungbote/neurobridge-navigation/internal/services"
)

type Services struct {
	Navigation services.NavigationService
}

func wireServices(log *logger.Logger, cfg Config, layouts navigation.LayoutSet, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Navigation: services.NewNavigationService(
			log,
			cfg.Site,
			layouts,
			reposet.NavExtension,
			reposet.NavLayout,
			clients.LayoutCache,
		),
	}
}
