package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" INFO ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONIncludesAppAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: zerolog.InfoLevel, Format: FormatJSON, App: "medtracker", Output: &buf})

	l.Debug().Msg("hidden")
	l.Info().Str("medication_id", "m-1").Msg("created")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected json line: %v", err)
	}
	if entry["app"] != "medtracker" || entry["message"] != "created" || entry["medication_id"] != "m-1" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestNew_TextIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: zerolog.InfoLevel, Format: ParseFormat("text"), Output: &buf})
	l.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") || strings.HasPrefix(out, "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}
