package db

import (
	types "github.com/yungbote/neurobridge-navigation/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.NavExtension{},
		&types.NavLayout{},
	)
}
