// Package logger holds the process-wide logrus logger.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}

// Setup applies the configured level and switches to a human readable
// formatter in development mode. Unknown levels fall back to info.
func Setup(level, mode string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if mode == "development" {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}
}

func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Silence discards all output, used by the live terminal view so log lines
// do not tear the screen.
func Silence() {
	log.SetOutput(io.Discard)
}

func IsDebug() bool {
	return log.IsLevelEnabled(logrus.DebugLevel)
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(log)
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		entry = entry.WithField("trace_id", traceID)
	}
	return entry
}

func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

func WithFields(fields map[string]interface{}) *logrus.Entry {
	return log.WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}

// WithTarget tags an entry with the monitored host it concerns.
func WithTarget(target string) *logrus.Entry {
	return log.WithField("target", target)
}

func Debug(msg string) { log.Debug(msg) }
func Info(msg string)  { log.Info(msg) }
func Warn(msg string)  { log.Warn(msg) }
func Error(msg string) { log.Error(msg) }

func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }

func InfoCtx(ctx context.Context, msg string) {
	FromContext(ctx).Info(msg)
}

