package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestForFormatJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := ForFormat(&buf, "json", slog.LevelInfo)
	log.Info("quantized", "layer", "image")

	out := buf.String()
	if !strings.Contains(out, `"msg":"quantized"`) {
		t.Fatalf("expected message in JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"layer":"image"`) {
		t.Fatalf("expected layer attr in JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"level":"INFO"`) {
		t.Fatalf("expected level INFO, got: %s", out)
	}
}

func TestForFormatLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := ForFormat(&buf, "text", slog.LevelWarn)
	log.Info("dropped")
	log.Debug("dropped too")
	if buf.Len() > 0 {
		t.Fatalf("expected no output below warn, got: %s", buf.String())
	}
	log.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn message, got: %s", buf.String())
	}
}

func TestForFormatPrettyFallback(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := ForFormat(&buf, "fancy", slog.LevelDebug)
	log.Debug("batch assembled", "size", 2)

	out := buf.String()
	if !strings.Contains(out, "batch assembled") || !strings.Contains(out, "size=2") {
		t.Fatalf("expected pretty output, got: %s", out)
	}
}

func TestWithAndGroup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := ForFormat(&buf, "json", slog.LevelInfo).With("component", "api").WithGroup("req")
	log.Info("handled", "status", 200)

	out := buf.String()
	if !strings.Contains(out, `"component":"api"`) {
		t.Fatalf("expected component attr, got: %s", out)
	}
	if !strings.Contains(out, `"req":{"status":200}`) {
		t.Fatalf("expected grouped attr, got: %s", out)
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := Discard()
	log.Error("nobody hears this")
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), ForFormat(&buf, "json", slog.LevelInfo))
	FromContext(ctx).Info("roundtrip")
	if !strings.Contains(buf.String(), "roundtrip") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}
}

func TestPrettyHandlerGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	slog.New(h.WithGroup("a").WithGroup("b").WithAttrs([]slog.Attr{slog.String("svc", "tio")})).
		Info("nested", "key", "val")

	out := buf.String()
	if !strings.Contains(out, "a.b.key=val") {
		t.Fatalf("expected a.b.key=val, got: %s", out)
	}
	if !strings.Contains(out, "a.b.svc=tio") {
		t.Fatalf("expected a.b.svc=tio, got: %s", out)
	}
	if h.WithGroup("") != slog.Handler(h) {
		t.Fatal("WithGroup(\"\") should return the same handler")
	}
}

func TestPrettyQuoting(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil)).Info("test", "msg", "hello world", "key", "simple")

	out := buf.String()
	if !strings.Contains(out, `msg="hello world"`) {
		t.Fatalf("expected quoted string, got: %s", out)
	}
	if !strings.Contains(out, "key=simple") {
		t.Fatalf("expected unquoted simple string, got: %s", out)
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"simple":       false,
		"has space":    true,
		"has\ttab":     true,
		"has\nnewline": true,
		`has"quote`:    true,
		"":             false,
	}
	for in, want := range tests {
		if got := needsQuoting(in); got != want {
			t.Errorf("needsQuoting(%q) = %v, want %v", in, got, want)
		}
	}
}
