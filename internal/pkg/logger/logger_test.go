package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DebugLevel,
		" WARN ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	base := Configure(Config{Level: DebugLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	componentLogger := Component(base, "analytics")
	componentLogger.Info().Int("unresolved", 2).Msg("snapshot projected")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["component"] != "analytics" {
		t.Errorf("component = %v, want analytics", entry["component"])
	}
	if entry["unresolved"] != float64(2) {
		t.Errorf("unresolved = %v, want 2", entry["unresolved"])
	}
}

func TestLevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: ErrorLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("info event written at error level: %s", buf.String())
	}
	Error().Msg("kept")
	if buf.Len() == 0 {
		t.Error("error event dropped at error level")
	}
}
