package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"cityforge/internal/logging"
)

func TestConsoleHandlerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("stage started", logging.String(logging.FieldComponent, "curate"), logging.Int("cities", 12))

	line := buf.String()
	if !strings.Contains(line, "INFO curate: stage started") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "cities=12") {
		t.Fatalf("expected attribute rendering, got %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Warn("missing source", logging.String("path", "/tmp/My Sources/USA.md"))
	if !strings.Contains(buf.String(), `path="/tmp/My Sources/USA.md"`) {
		t.Fatalf("expected quoted path, got %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("seeded", logging.Int("rows", 42))
	out := buf.String()
	if !strings.Contains(out, `"msg":"seeded"`) || !strings.Contains(out, `"rows":42`) {
		t.Fatalf("unexpected JSON output %q", out)
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextPrefersContextLogger(t *testing.T) {
	var ctxBuf, fallbackBuf bytes.Buffer
	ctxLogger, err := logging.New(logging.Options{Format: "console", Writer: &ctxBuf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	fallback, err := logging.New(logging.Options{Format: "console", Writer: &fallbackBuf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := logging.IntoContext(context.Background(), ctxLogger)
	logging.WithContext(ctx, fallback).Info("contextual log")
	if !strings.Contains(ctxBuf.String(), "contextual log") {
		t.Fatalf("expected context logger output, got %q", ctxBuf.String())
	}
	if fallbackBuf.Len() != 0 {
		t.Fatalf("fallback logger should be unused, got %q", fallbackBuf.String())
	}

	logging.WithContext(context.Background(), fallback).Info("fallback log")
	if !strings.Contains(fallbackBuf.String(), "fallback log") {
		t.Fatalf("expected fallback logger output, got %q", fallbackBuf.String())
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("noisy detail")
	if buf.Len() != 0 {
		t.Fatalf("expected debug output suppressed, got %q", buf.String())
	}
}
