package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Clark-Hu/movielib/internal/config"
)

// Options selects the sinks of the application logger.
type Options struct {
	Level      string
	Dev        bool
	Console    bool
	ConsoleOut io.Writer
	File       string
	MaxAge     time.Duration
}

// OptionsFromConfig maps the LOG_* settings onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Level:   cfg.LogLevel,
		Dev:     cfg.LogDev,
		Console: cfg.LogConsole,
		File:    cfg.LogFile,
		MaxAge:  time.Duration(cfg.LogMaxAgeDays) * 24 * time.Hour,
	}
}

func levelFromString(l string) zapcore.Level {
	switch strings.ToLower(l) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger writing human readable lines to the console and JSON
// lines to a daily rotated file. The returned func flushes and closes the file.
func New(opts Options) (*zap.Logger, func(), error) {
	lvl := zap.NewAtomicLevelAt(levelFromString(opts.Level))
	var cores []zapcore.Core

	if opts.Console {
		out := opts.ConsoleOut
		if out == nil {
			out = os.Stderr
		}
		encCfg := zap.NewProductionEncoderConfig()
		if opts.Dev {
			encCfg = zap.NewDevelopmentEncoderConfig()
		}
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(out), lvl))
	}

	var rotator *rotatelogs.RotateLogs
	if opts.File != "" {
		var err error
		rotator, err = newRotator(opts.File, opts.MaxAge)
		if err != nil {
			return nil, nil, err
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), lvl))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	zapOpts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if opts.Dev {
		zapOpts = append(zapOpts, zap.Development())
	}
	logger := zap.New(zapcore.NewTee(cores...), zapOpts...)

	cleanup := func() {
		_ = logger.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
	return logger, cleanup, nil
}

// newRotator turns app.log into app.20240101.log files with app.log linked to
// the current one.
func newRotator(path string, maxAge time.Duration) (*rotatelogs.RotateLogs, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = ".log"
	}
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	rotator, err := rotatelogs.New(
		base+".%Y%m%d"+ext,
		rotatelogs.WithLinkName(path),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return rotator, nil
}
