package typf

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNopHandlerNeverEnabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	SetLogger(nil) // restore silent default
	Logger().Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output from the default nop logger, got %q", buf.String())
	}
}

func TestSetLoggerSwapsActiveLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("hello")
	if buf.Len() == 0 {
		t.Fatal("expected output after SetLogger with a real handler")
	}
}
