package logger

import (
	"context"
	"os"
	"strings"

	"adclad/internal/shared/contextkeys"

	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
)

const (
	logFormatJSON = "json"

	envProduction = "production"
	envProd       = "prod"

	timestampFormat = "2006-01-02T15:04:05.000Z07:00"
	textTimestamp   = "2006-01-02 15:04:05"

	backendZap = "zap"
)

// Logger defines the interface for structured logging operations
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	WithFields(fields map[string]interface{}) Logger
	WithContext(ctx context.Context) Logger
	WithComponent(component string) Logger
}

// Config selects the backend, level and output format of a logger
type Config struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Backend     string `env:"LOG_BACKEND" envDefault:"logrus"`
}

// JSON reports whether structured output was requested, explicitly or by
// running in production
func (c Config) JSON() bool {
	return c.Format == logFormatJSON || c.Environment == envProduction || c.Environment == envProd
}

// level parses Level case-insensitively; unknown values mean info
func (c Config) level() logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// ConfigFromEnv reads Config from the environment, keeping defaults for
// anything that fails to parse
func ConfigFromEnv() Config {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{Level: "info", Environment: "development", Backend: "logrus"}
	}
	return cfg
}

// LogrusLogger implements the Logger interface using logrus
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogger builds a logger from the environment
func NewLogger() Logger {
	return New(ConfigFromEnv())
}

// New builds a logger from cfg. Backend "zap" selects the zap implementation.
func New(cfg Config) Logger {
	if cfg.Backend == backendZap {
		return NewZapLogger(cfg.level().String(), cfg.JSON())
	}

	base := logrus.New()
	base.SetLevel(cfg.level())
	base.SetOutput(os.Stdout)
	if cfg.JSON() {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: textTimestamp,
			ForceColors:     true,
		})
	}

	return &LogrusLogger{entry: logrus.NewEntry(base)}
}

func (l *LogrusLogger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *LogrusLogger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *LogrusLogger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *LogrusLogger) Error(args ...interface{}) { l.entry.Error(args...) }
func (l *LogrusLogger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l *LogrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *LogrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *LogrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *LogrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *LogrusLogger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

// WithFields adds structured fields to the logger
func (l *LogrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// contextFields maps request-scoped context values to log field names
var contextFields = []struct {
	key  interface{}
	name string
}{
	{contextkeys.UserIDKey, "user_id"},
	{contextkeys.UserRoleKey, "user_role"},
	{contextkeys.RequestIDKey, "request_id"},
	{contextkeys.ComponentKey, "component"},
	{contextkeys.OperationKey, "operation"},
}

// fieldsFromContext collects the non-empty string values of contextFields
func fieldsFromContext(ctx context.Context) map[string]interface{} {
	fields := map[string]interface{}{}
	for _, f := range contextFields {
		if v, ok := ctx.Value(f.key).(string); ok && v != "" {
			fields[f.name] = v
		}
	}
	return fields
}

// WithContext adds the request id, principal and operation carried by ctx
func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(fieldsFromContext(ctx))}
}

// WithComponent adds component name to the logger
func (l *LogrusLogger) WithComponent(component string) Logger {
	return &LogrusLogger{entry: l.entry.WithField("component", component)}
}
