package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/egisf/egisf/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := logging.NewLogger("test", "verbose")
	assert.Error(t, err)
}

func TestStdoutLogger_WithReplacesComponent(t *testing.T) {
	base := logging.NewStdoutLogger("server")
	child := base.With(logging.Field{Key: "component", Value: "notify"}, logging.Field{Key: "gate", Value: "sfm"})

	sl, ok := child.(*logging.StdoutLogger)
	require.True(t, ok, "With should return *StdoutLogger")
	assert.NotSame(t, base, sl)

	// Smoke: logging through the child must not panic.
	sl.Info("child logger ready", logging.Field{Key: "n", Value: 1})
}

func TestWriterLogger_ComponentNotDuplicated(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewWriterLogger(&buf, "server", "debug")
	require.NoError(t, err)

	child := l.With(logging.Field{Key: "component", Value: "ledger"}, logging.Field{Key: "db", Value: "x.db"})
	child.Debug("opened", logging.Field{Key: "rows", Value: 3})

	line := buf.Bytes()
	assert.Equal(t, 1, bytes.Count(line, []byte(`"component"`)))

	var m map[string]any
	require.NoError(t, json.Unmarshal(line, &m))
	assert.Equal(t, "ledger", m["component"])
	assert.Equal(t, "x.db", m["db"])
	assert.Equal(t, "opened", m["msg"])
	assert.Equal(t, float64(3), m["rows"])
}

func TestWriterLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewWriterLogger(&buf, "", "warn")
	require.NoError(t, err)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
