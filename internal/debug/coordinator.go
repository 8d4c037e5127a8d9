package debug

import (
	"context"
	"os"
	"strings"

	"idcard-merger/internal/debug/timing"
	"idcard-merger/internal/logger"
)

// TimingTracker measures operation performance
type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context)
}

type Config struct {
	EnableLogging        bool
	EnableTimingTracking bool
	UseJSONLogging       bool
	LogLevel             logger.LogLevel
}

func DefaultConfig() Config {
	return Config{
		EnableLogging:        true,
		EnableTimingTracking: true,
		UseJSONLogging:       false,
		LogLevel:             logger.InfoLevel,
	}
}

func ProductionConfig() Config {
	return Config{
		EnableLogging:        true,
		EnableTimingTracking: false,
		UseJSONLogging:       true,
		LogLevel:             logger.ErrorLevel,
	}
}

// ConfigFromEnv reads the diagnostics switches. They change what gets
// logged, never what the program does.
func ConfigFromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}

	if isTrue(getenv("IDMERGE_PRODUCTION")) {
		return ProductionConfig()
	}

	config := DefaultConfig()
	if isTrue(getenv("IDMERGE_DEBUG")) {
		config.LogLevel = logger.DebugLevel
	}
	if level := getenv("IDMERGE_LOG_LEVEL"); level != "" {
		config.LogLevel = logger.ParseLevel(level)
	}
	if isTrue(getenv("IDMERGE_JSON_LOGS")) {
		config.UseJSONLogging = true
	}
	return config
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Coordinator hands out the logger and timing tracker built from a Config.
type Coordinator struct {
	config        Config
	logger        logger.Logger
	timingTracker *timing.Tracker
}

func NewCoordinator(config Config) *Coordinator {
	var loggerImpl logger.Logger
	switch {
	case !config.EnableLogging:
		loggerImpl = logger.NoOpLogger{}
	case config.UseJSONLogging:
		loggerImpl = logger.NewJSONLogger(config.LogLevel)
	default:
		loggerImpl = logger.NewConsoleLogger(config.LogLevel)
	}

	timingTracker := timing.NewTracker(loggerImpl)
	timingTracker.SetEnabled(config.EnableTimingTracking)

	return &Coordinator{
		config:        config,
		logger:        loggerImpl,
		timingTracker: timingTracker,
	}
}

func (dc *Coordinator) Config() Config {
	return dc.config
}

func (dc *Coordinator) Logger() logger.Logger {
	return dc.logger
}

func (dc *Coordinator) TimingTracker() TimingTracker {
	return dc.timingTracker
}

func (dc *Coordinator) Shutdown() {
	dc.timingTracker.SetEnabled(false)
	dc.logger.Debug("DebugCoordinator", "diagnostics stopped", nil)
}
