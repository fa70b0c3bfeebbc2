package log

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, "debug")
	l.Debug().Uint32("account", 3).Msg("derived")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["message"] != "derived" {
		t.Errorf("message = %v, want derived", entry["message"])
	}
	if entry["account"] != float64(3) {
		t.Errorf("account = %v, want 3", entry["account"])
	}
}

func TestNewJSONLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, "warn")
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info line written at warn level: %s", buf.String())
	}
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keygen.log")
	if err := Init("info", true, path); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { _ = Init("info", false, "") })

	Session.Info().Msg("hello")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = NewJSONLogger(&buf, "debug")
	t.Cleanup(func() {
		Logger = prev
		initComponentLoggers()
	})

	initComponentLoggers()
	Wallet.Info().Msg("x")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["component"] != "wallet" {
		t.Errorf("component = %v, want wallet", entry["component"])
	}
}

func TestBenchmark(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = NewJSONLogger(&buf, "debug")
	initComponentLoggers()
	t.Cleanup(func() {
		Logger = prev
		initComponentLoggers()
	})

	Benchmark("derive_account")()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["operation"] != "derive_account" {
		t.Errorf("operation = %v, want derive_account", entry["operation"])
	}
	if _, ok := entry["duration"]; !ok {
		t.Error("benchmark line should carry a duration")
	}
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "off"} {
		if !ValidLevel(lvl) {
			t.Errorf("ValidLevel(%q) = false", lvl)
		}
	}
	if ValidLevel("trace") {
		t.Error("ValidLevel(trace) = true")
	}
}
