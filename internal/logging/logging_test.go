package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoanghai1803/mediatrack/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: " error ", want: slog.LevelError},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_JSONFormatFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer closer.Close()

	logger.Info("dropped")
	logger.Warn("kept", "user_id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decoding log line: %v", err)
	}
	if rec["msg"] != "kept" {
		t.Errorf("msg = %v, want %q", rec["msg"], "kept")
	}
	if rec["user_id"] != float64(7) {
		t.Errorf("user_id = %v, want 7", rec["user_id"])
	}
}

func TestNew_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	var buf bytes.Buffer

	logger, closer, err := New(config.LogConfig{
		Level:      "info",
		Format:     "text",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("hello file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file %q missing message", string(data))
	}
	if !strings.Contains(buf.String(), "hello file") {
		t.Errorf("stdout writer missing message: %q", buf.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid level, got nil")
	}
}
