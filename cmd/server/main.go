package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/artisanhub/internal/app"
	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"

	"github.com/gin-gonic/gin"
)

const banner = "\033[36m\033[1mArtisanHub API\033[0m\n\033[2mhandmade marketplace backend\033[0m"

func main() {
	mode := flag.String("mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()
	runMode, err := app.ParseMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println(banner)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := prepare(cfg); err != nil {
		stdLog.Fatalf("startup failed: %v", err)
	}
	err = app.Run(app.Options{
		Config:  cfg,
		Mode:    runMode,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	})
	if err != nil {
		stdLog.Fatalf("server exited: %v", err)
	}
}

// prepare checks secrets, migrates the schema and seeds the admin account
func prepare(cfg *config.Config) error {
	release := cfg.Server.Mode == "release"
	if cfg.JWT.WeakSecret() {
		if release {
			return errors.New("jwt secret is weak or still a sample value")
		}
		logger.Warnw("jwt_secret_weak")
	}

	if err := models.Connect(cfg.Database, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	switch {
	case release && cfg.Admin.Password == "":
		logger.Warnw("admin_bootstrap_skipped", "reason", "admin.password not set")
	default:
		if err := models.InitDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Warnw("admin_bootstrap_failed", "error", err)
		}
	}

	if release {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}
