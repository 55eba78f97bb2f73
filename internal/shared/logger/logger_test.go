package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(buf *bytes.Buffer, levels ...slog.Level) *slog.Logger {
	base := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewConditionalSourceHandler(base, levels...))
}

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		levels     []slog.Level
		wantSource bool
	}{
		{"info is quiet by default", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn carries source", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error carries source", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"debug mode adds source to info", slog.LevelInfo, []slog.Level{slog.LevelDebug, slog.LevelInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newBufferedLogger(&buf, tt.levels...)
			l.Log(context.Background(), tt.level, "card viewed")
			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")))
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferedLogger(&buf, slog.LevelError).With("card_id", 42).WithGroup("req")
	l.Info("view", "ip", "10.0.0.1")

	out := buf.String()
	assert.Contains(t, out, "card_id=42")
	assert.Contains(t, out, "req.ip=10.0.0.1")
	assert.NotContains(t, out, "source=")
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger().Named("codes").With("code", "ABCD1234")
	assert.NotPanics(t, func() {
		l.Infow("code sold", "plan", "premium")
		l.Errorw("mail failed", "error", assert.AnError)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
