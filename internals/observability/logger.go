package observability

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Development mode is keyed
// off APP_ENV so local runs get human-readable output.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" || env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NopLogger is used by tests that exercise services without caring about
// log output.
func NopLogger() *zap.Logger {
	return zap.NewNop()
}
