package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" info ":  slog.LevelInfo,
		"":        slog.LevelDebug,
		"trace":   slog.LevelDebug,
	}

	for input, want := range cases {
		if got := levelFromString(input); got != want {
			t.Fatalf("levelFromString(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestRunLogOnlyReceivesWarnings(t *testing.T) {
	t.Parallel()

	var runLog bytes.Buffer
	logger := NewWithRunLog("info", &runLog)

	logger.Info("progress message")
	logger.Warn("data quality issue", "article", 3)

	out := runLog.String()
	if strings.Contains(out, "progress message") {
		t.Fatalf("info message leaked into run log: %s", out)
	}
	if !strings.Contains(out, "data quality issue") {
		t.Fatalf("warning missing from run log: %s", out)
	}
}
