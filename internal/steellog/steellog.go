// Package steellog wires up the module's one logger: a zap
// SugaredLogger whose level comes from the STEEL_LOG_LEVEL environment
// variable, overridable by the CLI's --verbose flag.
package steellog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVar names the environment variable controlling default log level.
const EnvVar = "STEEL_LOG_LEVEL"

// New builds a logger for CLI use: human-readable console encoding to
// stderr. verbose forces debug level regardless of the environment.
func New(verbose bool) (*zap.SugaredLogger, error) {
	level := levelFromEnv()
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func levelFromEnv() zapcore.Level {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar)))
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return zapcore.WarnLevel
	}
	return level
}
