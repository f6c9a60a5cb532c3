package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName tags every line written by a non-nop logger
const ServiceName = "finder"

// Logger wraps zap.Logger so subsystems share one configured core
type Logger struct {
	*zap.Logger
}

// Config selects the level, encoding and sinks of a logger.
// Development switches to colored console output with stack traces on Warn.
type Config struct {
	Level       string
	Development bool
	OutputPaths []string
}

// New builds a logger from cfg. An empty level means info for production
// and debug for development.
func New(cfg Config) (*Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level := cfg.Level
	if level == "" {
		level = defaultLevel(cfg.Development)
	}
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(parsed)

	// every denial is kept
	zapCfg.Sampling = nil
	zapCfg.EncoderConfig = encoderConfig(cfg.Development)
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	if !cfg.Development {
		zapCfg.InitialFields = map[string]interface{}{"service": ServiceName}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// FromLevel builds the server logger. An unparseable level falls back to
// the mode's default rather than failing startup.
func FromLevel(level string, development bool) *Logger {
	logger, err := New(Config{Level: level, Development: development})
	if err == nil {
		return logger
	}
	logger, err = New(Config{Development: development})
	if err != nil {
		return NewNop()
	}
	logger.Warn("Unknown log level, using default",
		zap.String("level", level),
		zap.String("default", defaultLevel(development)))
	return logger
}

// Component returns a child logger named after a subsystem
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// ParseLevel converts a level name to zapcore.Level, ignoring case and
// surrounding space
func ParseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

func defaultLevel(development bool) string {
	if development {
		return "debug"
	}
	return "info"
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	if development {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return enc
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.MillisDurationEncoder
	return enc
}
