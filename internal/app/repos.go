package app

import (
	"github.com/yungbote/neurobridge-navigation/internal/data/repos"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
	"gorm.io/gorm"
)

type Repos struct {
	NavExtension repos.NavExtensionRepo
	NavLayout    repos.NavLayoutRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		NavExtension: repos.NewNavExtensionRepo(db, log),
		NavLayout:    repos.NewNavLayoutRepo(db, log),
	}
}
