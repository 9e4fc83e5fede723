package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestAppLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("debug", "json", &buf)

	l.Info("run finished", "run_id", "abc", "pages", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "run finished" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
	if entry["run_id"] != "abc" {
		t.Fatalf("expected run_id field, got %v", entry["run_id"])
	}
	if entry["pages"] != float64(3) {
		t.Fatalf("expected pages=3, got %v", entry["pages"])
	}
	if entry["service"] != serviceName {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
}

func TestAppLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", "json", &buf)

	l.Error("completion failed", errors.New("rate limited"), "status", 429)

	if !strings.Contains(buf.String(), `"error":"rate limited"`) {
		t.Fatalf("expected error field in %s", buf.String())
	}
}

func TestAppLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("warn", "json", &buf)

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info to be filtered, got %s", buf.String())
	}

	l.Warn("shown", "dangling")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn entry, got %s", buf.String())
	}
}
