package repos

import (
	"github.com/yungbote/neurobridge-navigation/internal/data/repos/navigation"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
	"gorm.io/gorm"
)

type NavExtensionRepo = navigation.NavExtensionRepo
type NavLayoutRepo = navigation.NavLayoutRepo

func NewNavExtensionRepo(db *gorm.DB, baseLog *logger.Logger) NavExtensionRepo {
	return navigation.NewNavExtensionRepo(db, baseLog)
}
func NewNavLayoutRepo(db *gorm.DB, baseLog *logger.Logger) NavLayoutRepo {
	return navigation.NewNavLayoutRepo(db, baseLog)
}
