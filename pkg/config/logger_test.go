package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger(LoggingConfig{Level: "debug", Format: format, OutputPath: "stdout"})
		if err != nil {
			t.Fatalf("NewLogger(%s) failed: %v", format, err)
		}
		if !logger.Core().Enabled(-1) {
			t.Fatalf("expected debug level enabled for %s", format)
		}
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(LoggingConfig{Level: "loud", Format: "json"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indexer.log")

	logger, err := NewLogger(LoggingConfig{Level: "info", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Info("tick applied")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"tick applied"`) || !strings.Contains(string(raw), `"service":"mferoll-indexer"`) {
		t.Fatalf("unexpected log output %q", raw)
	}
}
