package application

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrBadEnvironment is returned by NewLogger for an environment other
// than "development" or "production".
var ErrBadEnvironment = errors.New("[msgbox] Logger environment must be either development or production")

// Logger logs ledger events through a zap.SugaredLogger.
// Context is passed as alternating keys and values.
type Logger struct {
	zLogger *zap.SugaredLogger
}

// A LoggerConfig selects the environment of the logger, "development"
// (every transaction is traced) or "production" (blocks and
// rejections only), an optional file mirroring stderr, and whether
// errors carry a stack trace.
type LoggerConfig struct {
	EnableStacktrace bool   `toml:"enable_stacktrace,omitempty"`
	Environment      string `toml:"env"`
	Path             string `toml:"path,omitempty"`
}

func (conf *LoggerConfig) level() (zapcore.Level, error) {
	switch {
	case strings.EqualFold("development", conf.Environment):
		return zap.DebugLevel, nil
	case strings.EqualFold("production", conf.Environment):
		return zap.InfoLevel, nil
	}
	return zap.InfoLevel, ErrBadEnvironment
}

// NewLogger builds a console logger writing to stderr and to
// conf.Path, if set.
func NewLogger(conf *LoggerConfig) (*Logger, error) {
	lvl, err := conf.level()
	if err != nil {
		return nil, err
	}
	outputs := []string{"stderr"}
	if conf.Path != "" {
		outputs = append(outputs, conf.Path)
	}

	zConfig := &zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          "console",
		DisableStacktrace: !conf.EnableStacktrace,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "path",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths: outputs,
	}
	logger, err := zConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "[msgbox] Cannot build the logger")
	}
	return &Logger{logger.Sugar()}, nil
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// With returns a child Logger that adds keysAndValues to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{l.zLogger.With(keysAndValues...)}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zLogger.Sync()
}

// Debug traces a single step, such as one transaction of a block.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.zLogger.Debugw(msg, keysAndValues...)
}

// Info reports progress, such as a produced block.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.zLogger.Infow(msg, keysAndValues...)
}

// Warn reports a rejected transaction.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.zLogger.Warnw(msg, keysAndValues...)
}

// Error reports a failure of the ledger itself, such as a storage
// error, that needs an operator.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.zLogger.Errorw(msg, keysAndValues...)
}
