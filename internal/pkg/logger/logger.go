package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

var zapLevels = map[Level]zapcore.Level{
	DEBUG: zapcore.DebugLevel,
	INFO:  zapcore.InfoLevel,
	WARN:  zapcore.WarnLevel,
	ERROR: zapcore.ErrorLevel,
	FATAL: zapcore.FatalLevel,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel maps a config string ("debug", "info", ...) to a Level.
// Unknown values fall back to INFO.
func ParseLevel(s string) Level {
	for lvl, name := range levelNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return lvl
		}
	}
	return INFO
}

// Logger wraps a zap logger with an adjustable level.
type Logger struct {
	level Level
	atom  zap.AtomicLevel
	zl    *zap.Logger
}

// New builds a console logger writing to stderr.
func New(level Level) *Logger {
	atom := zap.NewAtomicLevelAt(zapLevels[level])

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atom
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}

	return &Logger{level: level, atom: atom, zl: zl}
}

// NewProduction builds a JSON logger, as used by the API server in production.
func NewProduction(level Level) *Logger {
	atom := zap.NewAtomicLevelAt(zapLevels[level])

	cfg := zap.NewProductionConfig()
	cfg.Level = atom

	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}

	return &Logger{level: level, atom: atom, zl: zl}
}

// FromZap wraps an existing zap logger, e.g. zaptest or zap.NewNop in tests.
func FromZap(zl *zap.Logger) *Logger {
	return &Logger{level: DEBUG, atom: zap.NewAtomicLevelAt(zapcore.DebugLevel), zl: zl}
}

func (l *Logger) Debug(format string, v ...interface{}) { l.zl.Sugar().Debugf(format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.zl.Sugar().Infof(format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.zl.Sugar().Warnf(format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.zl.Sugar().Errorf(format, v...) }
func (l *Logger) Fatal(format string, v ...interface{}) { l.zl.Sugar().Fatalf(format, v...) }

// Zap exposes the structured logger for field-based logging.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) {
	l.level = level
	l.atom.SetLevel(zapLevels[level])
}

// GetLevel returns current logging level
func (l *Logger) GetLevel() Level {
	return l.level
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// Global logger instance
var defaultLogger = New(INFO)

// Package-level functions for easy access
func Debug(format string, v ...interface{}) { defaultLogger.Debug(format, v...) }
func Info(format string, v ...interface{})  { defaultLogger.Info(format, v...) }
func Warn(format string, v ...interface{})  { defaultLogger.Warn(format, v...) }
func Error(format string, v ...interface{}) { defaultLogger.Error(format, v...) }
func Fatal(format string, v ...interface{}) { defaultLogger.Fatal(format, v...) }

// L returns the structured global logger.
func L() *zap.Logger { return defaultLogger.Zap() }

// Default returns the global logger instance.
func Default() *Logger { return defaultLogger }

// SetDefault replaces the global logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// SetGlobalLevel sets the level for the global logger
func SetGlobalLevel(level Level) {
	defaultLogger.SetLevel(level)
}
