package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if got := GetRunID(ctx); got != "" {
		t.Errorf("expected empty run id, got %q", got)
	}

	ctx = WithRunID(ctx, "run-123")
	if got := GetRunID(ctx); got != "run-123" {
		t.Errorf("expected run-123, got %q", got)
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	if WithContext(context.Background(), base) != base {
		t.Error("logger without context fields should be returned unchanged")
	}

	ctx := WithComponent(WithRunID(context.Background(), "run-123"), "cleanup")
	WithContext(ctx, base).Info("pass started")

	output := buf.String()
	if !strings.Contains(output, "run_id=run-123") || !strings.Contains(output, "component=cleanup") {
		t.Errorf("context fields missing: %q", output)
	}
}
