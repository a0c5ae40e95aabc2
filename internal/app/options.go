package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/logger"

	"go.uber.org/zap"
)

// Process roles one binary can take
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 15 * time.Second

// ParseMode case-insensitive; empty means all
func ParseMode(raw string) (string, error) {
	switch mode := strings.ToLower(strings.TrimSpace(raw)); mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q: want all, api or worker", raw)
	}
}

// Options how Run starts the marketplace processes
type Options struct {
	Config          *config.Config
	Mode            string
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

func (o Options) withDefaults() (Options, error) {
	mode, err := ParseMode(o.Mode)
	if err != nil {
		return o, err
	}
	o.Mode = mode
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	return o, nil
}
