package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// CatalogGorm reads the wheel catalog (products, specs, vehicles, brands).
	CatalogGorm *gorm.DB
	// AnalyticsDB stores search events. Nil when ANALYTICS_DB_URL is not set.
	AnalyticsDB *pgxpool.Pool
)

func InitDB() {
	initGORM()
}

func initGORM() {
	// Shared logger config
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	dialector, err := catalogDialector()
	if err != nil {
		Log.Fatal().Err(err).Msg("❌ Invalid catalog database config")
	}

	CatalogGorm, err = gorm.Open(dialector, &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		Log.Fatal().Err(err).Msg("❌ Failed to connect to catalog database with GORM")
	}
	if sqlDB, err := CatalogGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	Log.Info().Str("driver", dialector.Name()).Msg("✅ Catalog database connected (GORM)")
}

// catalogDialector picks the driver from DB_DRIVER. The FastAdmin back office
// writes the catalog to mysql; postgres is used for the hosted replica.
func catalogDialector() (gorm.Dialector, error) {
	driver := GetEnv("DB_DRIVER", "postgres")
	dsn := os.Getenv("CATALOG_DB_URL")

	switch driver {
	case "postgres":
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				GetEnv("DB_HOST", "localhost"),
				GetEnv("DB_USER", "postgres"),
				GetEnv("DB_PASSWORD", ""),
				GetEnv("DB_NAME", "rimsurge"),
				GetEnv("DB_PORT", "5432"),
			)
			Log.Warn().Msg("⚠️ CATALOG_DB_URL not set, using local GORM default")
		}
		return postgres.Open(dsn), nil
	case "mysql":
		if dsn == "" {
			dsn = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				GetEnv("DB_USER", "root"),
				GetEnv("DB_PASSWORD", ""),
				GetEnv("DB_HOST", "localhost"),
				GetEnv("DB_PORT", "3306"),
				GetEnv("DB_NAME", "rimsurge"),
			)
			Log.Warn().Msg("⚠️ CATALOG_DB_URL not set, using local mysql default")
		}
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// InitAnalyticsDB opens the search event pool. Search tracking is skipped
// when ANALYTICS_DB_URL is empty.
func InitAnalyticsDB() {
	url := os.Getenv("ANALYTICS_DB_URL")
	if url == "" {
		Log.Warn().Msg("⚠️ ANALYTICS_DB_URL not set, search events disabled")
		return
	}

	ctx, cancel := WithTimeout()
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		Log.Error().Err(err).Msg("❌ Unable to create analytics pool")
		return
	}
	if err := pool.Ping(ctx); err != nil {
		Log.Error().Err(err).Msg("❌ Analytics database ping failed")
		pool.Close()
		return
	}
	AnalyticsDB = pool
	Log.Info().Msg("✅ Analytics database connected (pgx)")
}

func CloseDB() {
	if AnalyticsDB != nil {
		AnalyticsDB.Close()
		Log.Info().Msg("✅ Analytics database connection closed (pgx)")
	}

	if CatalogGorm != nil {
		sqlDB, _ := CatalogGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			Log.Info().Msg("✅ Catalog database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
