package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warn", WARNING},
		{"Warning", WARNING},
		{" error ", ERROR},
		{"", INFO},
		{"verbose", INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(WARNING, &buf)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warning("warning %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARNING] warning 3")
	assert.Contains(t, out, "[ERROR] error 4")
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(DEBUG, &buf)

	Debug("fetching %s", "requests")
	assert.True(t, IsDebugEnabled())
	assert.Contains(t, buf.String(), "[DEBUG] fetching requests")

	SetLevel(ERROR)
	Info("hidden")
	assert.Equal(t, ERROR, GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	Init(INFO, &buf)

	w := Writer(INFO)
	n, err := w.Write([]byte("[GIN] GET /api/v1/health\n"))

	assert.NoError(t, err)
	assert.Equal(t, 25, n)
	assert.Contains(t, buf.String(), "[INFO] [GIN] GET /api/v1/health")
}
