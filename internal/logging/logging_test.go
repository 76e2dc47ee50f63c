package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info record should be filtered, got %s", buf.String())
	}

	logger.Warn("shown", "quote_number", "ORC-2026-0001")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec["msg"] != "shown" || rec["quote_number"] != "ORC-2026-0001" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if _, ok := rec["stacktrace"]; ok {
		t.Fatalf("warn record should not carry a stack trace")
	}
}

func TestNew_ErrorCarriesStackTrace(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "").With("component", "test").Error("boom")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Fatalf("error record missing stacktrace: %v", rec)
	}
	if rec["component"] != "test" {
		t.Fatalf("WithAttrs lost: %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
