package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" INFO ", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", defaultZapLevel},
		{"", defaultZapLevel},
	}
	for _, tt := range tests {
		if got := toZapLevel(tt.in); got != tt.want {
			t.Errorf("toZapLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "coolctl.log")

	log, err := New("info", path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Debugw("hidden")
	log.Infow("poller started", "interval", "3s")
	if err := log.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "poller started") {
		t.Fatalf("log output = %q, want INFO poller started", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("log output = %q, debug entry should be filtered", out)
	}
}

func TestNop_CloseIsSafe(t *testing.T) {
	if err := Nop().Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	var nilLogger *Logger
	if err := nilLogger.Close(); err != nil {
		t.Fatalf("nil Close returned error: %v", err)
	}
}
