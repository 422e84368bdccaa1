package utils

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerFormatsAndFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithConfig(LoggerConfig{Writer: &buf, Level: slog.LevelInfo, NoColor: true})

	l.Debug("[test] hidden %d", 1)
	l.Info("[test] ingested %d rows", 42)
	l.Warn("[test] dropped %s", "row")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "[test] ingested 42 rows") {
		t.Errorf("missing formatted info line: %q", out)
	}
	if !strings.Contains(out, "WRN") {
		t.Errorf("missing warn level marker: %q", out)
	}
}

func TestLoggerWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithConfig(LoggerConfig{Writer: &buf, NoColor: true}).With("trace_id", "abc")

	l.Info("hello")
	if !strings.Contains(buf.String(), "trace_id=abc") {
		t.Errorf("attribute missing: %q", buf.String())
	}
}

func TestFanoutHandlerWritesToAll(t *testing.T) {
	var a, b bytes.Buffer
	h := newFanoutHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h)

	log.Info("only-a")
	log.Error("both")

	if !strings.Contains(a.String(), "only-a") || !strings.Contains(a.String(), "both") {
		t.Errorf("handler a: %q", a.String())
	}
	if strings.Contains(b.String(), "only-a") || !strings.Contains(b.String(), "both") {
		t.Errorf("handler b: %q", b.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Errorf("ParseLevel(%q) = %v; want %v", raw, got, want)
		}
	}
}
