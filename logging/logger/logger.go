// Package logger provides the context-aware structured logger used across
// the application, built on logrus.
//
// Log calls take a context and a message followed by alternating key/value
// pairs:
//
//	log.Info(ctx, "post created", "post_id", post.ID.Hex())
//
// The trace id and signed-in user id carried by the context are attached to
// every entry, and sensitive fields are masked before output.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ncobase/qeonaru/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// VersionKey is the log field carrying the application version.
const VersionKey = "version"

// Logger wraps logrus with context-aware key/value logging.
type Logger struct {
	*logrus.Logger
	version      string
	logFile      *os.File
	desensitizer *Desensitizer
}

var (
	standardLogger *Logger
	once           sync.Once
)

// StdLogger returns the process-wide logger instance.
func StdLogger() *Logger {
	once.Do(func() {
		standardLogger = newLogger()
	})
	return standardLogger
}

// New configures the process-wide logger and returns its cleanup function.
func New(c *config.Config) (func(), error) {
	return StdLogger().Init(c)
}

// Discard returns a logger that drops every entry.
func Discard() *Logger {
	l := newLogger()
	l.Logger.SetOutput(io.Discard)
	return l
}

func newLogger() *Logger {
	l := &Logger{
		Logger:       logrus.New(),
		desensitizer: NewDesensitizer(nil),
	}
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// SetVersion sets the version attached to every entry.
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// ApplyLevel sets the level from its numeric configuration value.
func (l *Logger) ApplyLevel(level int) {
	if level < int(logrus.PanicLevel) || level > int(logrus.TraceLevel) {
		level = int(logrus.InfoLevel)
	}
	l.SetLevel(logrus.Level(level))
}

// Init initializes the logger with the given configuration.
func (l *Logger) Init(c *config.Config) (func(), error) {
	if c == nil {
		return func() {}, nil
	}

	l.ApplyLevel(c.Level)
	l.desensitizer = NewDesensitizer(c.Desensitization)

	switch c.Format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	switch c.Output {
	case "stderr":
		l.Logger.SetOutput(os.Stderr)
	case "file":
		if c.OutputFile == "" {
			return nil, fmt.Errorf("logger output is file but output_file is empty")
		}
		if err := l.openLogFile(c.OutputFile); err != nil {
			return nil, err
		}
	default:
		l.Logger.SetOutput(os.Stdout)
	}

	return func() {
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

func (l *Logger) openLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	l.logFile = f
	l.Logger.SetOutput(f)
	return nil
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context, keyvals []any) *logrus.Entry {
	fields := fieldsFromArgs(keyvals)

	if traceID := getTraceID(ctx); traceID != "" {
		fields[traceKey] = traceID
	}
	if userID := getUserID(ctx); userID != "" {
		fields[userKey] = userID
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}

	return l.Logger.WithFields(l.desensitizer.DesensitizeFields(fields))
}

// fieldsFromArgs pairs up alternating keys and values.
// A trailing key without a value is logged under "!BADKEY".
func fieldsFromArgs(keyvals []any) logrus.Fields {
	fields := make(logrus.Fields, len(keyvals)/2+3)
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 >= len(keyvals) {
			fields["!BADKEY"] = keyvals[i]
			break
		}
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		value := keyvals[i+1]
		if err, ok := value.(error); ok && err != nil {
			value = err.Error()
		}
		fields[key] = value
	}
	return fields
}

func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, keyvals ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	l.entryFromContext(ctx, keyvals).Log(level, msg)
}

func (l *Logger) Trace(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.TraceLevel, msg, keyvals...)
}
func (l *Logger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.DebugLevel, msg, keyvals...)
}
func (l *Logger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.InfoLevel, msg, keyvals...)
}
func (l *Logger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.WarnLevel, msg, keyvals...)
}
func (l *Logger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, keyvals...)
}
