package app

import (
	"errors"
	"net"

	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/provider"
	"github.com/artisanhub/internal/router"
	"github.com/artisanhub/internal/worker"
)

// BuildRunner api mode serves HTTP only, worker mode consumes the queue only,
// all mode does both but skips the worker while the queue is disabled
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, errors.New("worker mode needs queue.enabled")
	}

	container := provider.NewContainer(cfg)
	runner := NewRunner()
	if mode != ModeWorker {
		engine := router.SetupRouter(cfg, container)
		runner.services = append(runner.services, NewHTTPService(listenAddr(cfg.Server), engine))
	}
	if cfg.Queue.Enabled && mode != ModeAPI {
		svc, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		runner.services = append(runner.services, svc)
	}
	return runner, nil
}

func listenAddr(cfg config.ServerConfig) string {
	port := cfg.Port
	if port == "" {
		port = "5000"
	}
	return net.JoinHostPort(cfg.Host, port)
}

// Run builds the runner for opts.Mode and blocks until shutdown
func Run(opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start",
		"mode", opts.Mode,
		"addr", listenAddr(opts.Config.Server),
		"services", runner.Services(),
	)
	return RunWithOptions(runner, opts)
}
