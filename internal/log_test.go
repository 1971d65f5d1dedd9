package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"ERROR", LogLevelError, true},
		{"warn", LogLevelWarn, true},
		{" Info ", LogLevelInfo, true},
		{"DEBUG", LogLevelDebug, true},
		{"TRACE", LogLevelTrace, true},
		{"", LogLevelInfo, false},
		{"LOUD", LogLevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{level: LogLevelWarn, out: log.New(&buf, "", 0)}

	l.Info("hidden %d", 1)
	l.Debug("hidden")
	l.Warn("shown %s", "warn")
	l.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := (&Logger{level: LogLevelTrace, out: log.New(&buf, "", 0)}).With("sampler")

	l.Trace("drew %d", 25)
	assert.Equal(t, "[TRACE] [sampler] drew 25\n", buf.String())
	assert.Equal(t, LogLevelTrace, l.GetLevel())
	assert.Equal(t, "TRACE", l.GetLevel().String())
}

func TestDiscardLogger(t *testing.T) {
	l := NewDiscardLogger()
	l.Error("nothing to see")
	assert.Equal(t, LogLevelError, l.GetLevel())
}
