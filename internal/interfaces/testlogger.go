package interfaces

import "fmt"

// logfer is satisfied by *testing.T and *testing.B.
type logfer interface {
	Logf(format string, args ...any)
}

// TestLogger routes log lines to a test's log so they only show up for
// failing or verbose runs.
type TestLogger struct {
	t       logfer
	verbose bool
	fields  []Field
}

// NewTestLogger creates a logger bound to t. Debug and Info lines are
// dropped unless verbose is set.
func NewTestLogger(t logfer, verbose bool) *TestLogger {
	return &TestLogger{t: t, verbose: verbose}
}

func (tl *TestLogger) emit(level, msg string, fields []Field) {
	all := append(append([]Field{}, tl.fields...), fields...)
	if len(all) == 0 {
		tl.t.Logf("[%s] %s", level, msg)
		return
	}
	tl.t.Logf("[%s] %s %s", level, msg, formatFields(all))
}

func (tl *TestLogger) Debug(msg string, fields ...Field) {
	if tl.verbose {
		tl.emit("DEBUG", msg, fields)
	}
}

func (tl *TestLogger) Info(msg string, fields ...Field) {
	if tl.verbose {
		tl.emit("INFO", msg, fields)
	}
}

func (tl *TestLogger) Warn(msg string, fields ...Field) {
	tl.emit("WARN", msg, fields)
}

func (tl *TestLogger) Error(msg string, fields ...Field) {
	tl.emit("ERROR", msg, fields)
}

func (tl *TestLogger) With(fields ...Field) Logger {
	return &TestLogger{
		t:       tl.t,
		verbose: tl.verbose,
		fields:  append(append([]Field{}, tl.fields...), fields...),
	}
}

func formatFields(fields []Field) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%v", f.Key, f.Value)
	}
	return out
}
