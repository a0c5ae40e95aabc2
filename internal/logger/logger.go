package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options log output settings
type Options struct {
	Dir        string
	Filename   string
	Level      string // debug, info, warn, error; empty follows the server mode
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Stdout     bool // mirror release logs to stdout (containers)
}

// withDefaults fills rotation limits and the file location
func (o Options) withDefaults() Options {
	if o.MaxSizeMB <= 0 {
		o.MaxSizeMB = 100
	}
	if o.MaxBackups <= 0 {
		o.MaxBackups = 7
	}
	if o.MaxAgeDays <= 0 {
		o.MaxAgeDays = 30
	}
	o.Dir = strings.TrimSpace(o.Dir)
	if o.Dir == "" {
		o.Dir = "logs"
	}
	o.Filename = strings.TrimSpace(o.Filename)
	if o.Filename == "" {
		o.Filename = "artisanhub.log"
	}
	return o
}

// L global logger
var L *zap.Logger

var fallback = sync.OnceValue(func() *zap.Logger {
	return build(zapcore.NewConsoleEncoder(encoderConfig()), zap.NewAtomicLevelAt(zap.InfoLevel), zapcore.AddSync(os.Stdout))
})

// Init builds the global logger and replaces zap's globals
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

// New debug mode writes console lines to stdout; anything else writes JSON
// to a rotating file, or to stdout when the file cannot be opened.
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), "debug")
	level := resolveLevel(options.Level, debug)
	if debug {
		return build(zapcore.NewConsoleEncoder(encoderConfig()), level, zapcore.AddSync(os.Stdout))
	}

	sinks := make([]zapcore.WriteSyncer, 0, 2)
	file, err := openRotatingFile(options.withDefaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file unavailable, writing to stdout: %v\n", err)
	} else {
		sinks = append(sinks, file)
	}
	if err != nil || options.Stdout {
		sinks = append(sinks, zapcore.AddSync(os.Stdout))
	}
	return build(zapcore.NewJSONEncoder(encoderConfig()), level, sinks...)
}

func build(enc zapcore.Encoder, level zap.AtomicLevel, sinks ...zapcore.WriteSyncer) *zap.Logger {
	cores := make([]zapcore.Core, 0, len(sinks))
	for i, sink := range sinks {
		if i > 0 {
			enc = enc.Clone()
		}
		cores = append(cores, zapcore.NewCore(enc, sink, level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

func resolveLevel(raw string, debug bool) zap.AtomicLevel {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if lvl, err := zapcore.ParseLevel(raw); raw != "" && err == nil {
		return zap.NewAtomicLevelAt(lvl)
	}
	if debug {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

// openRotatingFile the directory is created and the file opened once up front so
// a bad path surfaces at startup instead of on the first write
func openRotatingFile(o Options) (zapcore.WriteSyncer, error) {
	path, err := filepath.Abs(filepath.Join(o.Dir, o.Filename))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	_ = f.Close()
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    o.MaxSizeMB,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   o.Compress,
	}), nil
}

// StdLogger the global logger behind the standard library log API
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z global logger, or a stdout console logger before Init
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	return fallback()
}

func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW sugared logger carrying kv
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }

func Infow(message string, kv ...interface{}) { S().Infow(message, kv...) }

func Warnw(message string, kv ...interface{}) { S().Warnw(message, kv...) }

func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }
