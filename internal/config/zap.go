package config

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func productionConfig(levelStr string) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(levelStr))
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg
}

// NewZap builds the JSON logger used by the API server.
func NewZap(levelStr string) *zap.Logger {
	log, err := productionConfig(levelStr).Build()
	if err != nil {
		return zap.NewNop()
	}

	return log
}

// NewFileZap logs to path only. The terminal client owns stdout and stderr
// while it runs, so its logs must go elsewhere.
func NewFileZap(path string, levelStr string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}

	cfg := productionConfig(levelStr)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return log
}
