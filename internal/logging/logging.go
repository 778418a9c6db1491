// ABOUTME: Structured logging setup built on zap with a rotating log file.
// ABOUTME: Components take named child loggers from the root logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger names used across the engine.
const (
	NameGateway    = "gateway"
	NameRepository = "repository"
	NameTracker    = "tracker"
	NameMCP        = "mcp"
	NameCLI        = "cli"
)

// Options configures the root logger.
type Options struct {
	// Dir receives healthlog.log. Empty disables the file core.
	Dir string
	// Debug tees debug-level console output to stderr.
	Debug bool
}

// New builds the root logger. With neither a file nor debug output
// configured it returns a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	var cores []zapcore.Core

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0750); err != nil {
			return nil, fmt.Errorf("create logs directory: %w", err)
		}

		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, "healthlog.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(logFile),
			zap.InfoLevel,
		))
	}

	if opts.Debug {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zap.DebugLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
