package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/egisf/egisf/internal/interfaces"
)

// Logger and Field are re-exported so most packages only import logging.
type (
	Logger = interfaces.Logger
	Field  = interfaces.Field
)

// StdoutLogger is a structured logger that prints JSON lines to stdout.
// It implements interfaces.Logger on top of zap.
type StdoutLogger struct {
	component string
	base      *zap.Logger // without the component field
	z         *zap.Logger
}

// NewStdoutLogger creates a logger at info level. component is optional and
// is attached to every line.
func NewStdoutLogger(component string) *StdoutLogger {
	l, err := NewLogger(component, "info")
	if err != nil {
		// "info" always parses
		panic(err)
	}
	return l
}

// NewLogger creates a logger at the given level (debug, info, warn, error).
func NewLogger(component, level string) (*StdoutLogger, error) {
	return NewWriterLogger(os.Stdout, component, level)
}

// NewWriterLogger is NewLogger writing to w instead of stdout.
func NewWriterLogger(w io.Writer, component, level string) (*StdoutLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(lvl),
	)

	return newStdoutLogger(zap.New(core), component), nil
}

func newStdoutLogger(base *zap.Logger, component string) *StdoutLogger {
	z := base
	if component != "" {
		z = base.With(zap.String("component", component))
	}
	return &StdoutLogger{component: component, base: base, z: z}
}

// ParseLevel maps a config string onto a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) {
	s.z.Debug(msg, toZap(fields)...)
}

func (s *StdoutLogger) Info(msg string, fields ...Field) {
	s.z.Info(msg, toZap(fields)...)
}

func (s *StdoutLogger) Warn(msg string, fields ...Field) {
	s.z.Warn(msg, toZap(fields)...)
}

func (s *StdoutLogger) Error(msg string, fields ...Field) {
	s.z.Error(msg, toZap(fields)...)
}

// With returns a child logger. A "component" field replaces the component
// name instead of being appended twice.
func (s *StdoutLogger) With(fields ...Field) Logger {
	component := s.component
	rest := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				component = str
				continue
			}
		}
		rest = append(rest, f)
	}
	base := s.base
	if len(rest) > 0 {
		base = base.With(toZap(rest)...)
	}
	return newStdoutLogger(base, component)
}

// Sync flushes buffered log entries.
func (s *StdoutLogger) Sync() error {
	return s.z.Sync()
}
