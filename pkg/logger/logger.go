package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	var err error
	L, err = New(levelFromEnv())
	if err != nil {
		panic(err)
	}
}

// New builds the production JSON logger. Callers log through the returned
// *zap.Logger directly, so no caller skip is applied.
func New(level zapcore.Level, opts ...zap.Option) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(level)
	return config.Build(opts...)
}

func levelFromEnv() zapcore.Level {
	level := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return zapcore.InfoLevel
		}
	}
	return level
}

// WithComponent returns a logger tagged with the component name (service, handler, worker, ...).
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}

// Replace swaps the process logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	prev := L
	L = l
	return func() { L = prev }
}
