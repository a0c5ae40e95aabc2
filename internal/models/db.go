package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/artisanhub/internal/config"
	applog "github.com/artisanhub/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver: %s", driver)
}

// sqlLogger routes gorm's statement log through the application logger
func sqlLogger(slowQueryMs int, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(applog.StdLogger(), gormlogger.Config{
		SlowThreshold:             time.Duration(slowQueryMs) * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Connect opens the global connection and applies the pool limits
func Connect(cfg config.DatabaseConfig, debug bool) error {
	dialector, err := dialectorFor(cfg.Driver, cfg.DSN)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         sqlLogger(cfg.SlowQueryMs, debug),
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	pool := cfg.Pool
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(seconds(pool.ConnMaxLifetimeSeconds))
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(seconds(pool.ConnMaxIdleTimeSeconds))
	}
	DB = db
	return nil
}

// AllModels every marketplace table in migration order
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Review{},
		&Wishlist{},
		&WishlistItem{},
		&Notification{},
	}
}

// AutoMigrate creates or updates every marketplace table
func AutoMigrate() error {
	return DB.AutoMigrate(AllModels()...)
}
