package app

import (
	"time"

	"github.com/yungbote/neurobridge-navigation/internal/data/db"
	"github.com/yungbote/neurobridge-navigation/internal/platform/envutil"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
	"github.com/yungbote/neurobridge-navigation/internal/services"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	DB db.Config

	RedisAddr      string
	LayoutCacheTTL time.Duration
	LayoutFile     string

	Site services.NavigationConfig

	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        envutil.String("PORT", "8080", log),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "neurobridge-navigation", log),
		Environment: envutil.String("APP_ENV", "development", log),
		Version:     envutil.String("APP_VERSION", "dev", log),

		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres, log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", log),
			PostgresName:     envutil.String("POSTGRES_NAME", "navigation", log),
			SQLitePath:       envutil.String("SQLITE_PATH", "navigation.db", log),
		},

		RedisAddr:      envutil.String("REDIS_ADDR", "", log),
		LayoutCacheTTL: envutil.Duration("LAYOUT_CACHE_TTL", 5*time.Minute, log),
		LayoutFile:     envutil.String("NAV_LAYOUT_FILE", "", log),

		Site: services.NavigationConfig{
			SiteHomeCourseID: envutil.Int64("SITE_HOME_COURSE_ID", 1, log),
			WWWRoot:          envutil.String("SITE_WWW_ROOT", "http://localhost", log),
			SiteName:         envutil.String("SITE_FULL_NAME", "Learning platform", log),
			DefaultMoreAfter: envutil.Int("NAV_MORE_AFTER", 0, log),
		},

		CORSOrigins: envutil.List("CORS_ORIGINS", nil, log),
	}
}
