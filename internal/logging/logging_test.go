package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		verbose bool
		want    zapcore.Level
		wantErr bool
	}{
		{"", false, zapcore.InfoLevel, false},
		{"warn", false, zapcore.WarnLevel, false},
		{"DEBUG", false, zapcore.DebugLevel, false},
		{"error", true, zapcore.DebugLevel, false},
		{"loud", false, zapcore.InfoLevel, true},
	}
	for _, tc := range tests {
		got, err := parseLevel(tc.in, tc.verbose)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("parseLevel(%q,%v)=(%v,%v); want %v err=%v", tc.in, tc.verbose, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestForTUI_WritesOnlyToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "console.log")
	logger, err := ForTUI(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("ForTUI: %v", err)
	}
	logger.Debug("layout: initialized")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "layout: initialized") {
		t.Fatalf("expected log line in file; got %q", string(b))
	}
}

func TestForTUI_NoFileIsNop(t *testing.T) {
	t.Parallel()

	logger, err := ForTUI(Options{})
	if err != nil {
		t.Fatalf("ForTUI: %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected a no-op logger")
	}
}
