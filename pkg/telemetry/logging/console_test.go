package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newConsole(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(NewConsoleHandler(&buf, "[SafeTube Cleanup]", level)), &buf
}

func TestConsoleHandler_InfoOmitsAttrs(t *testing.T) {
	logger, buf := newConsole(slog.LevelInfo)

	logger.With("run_id", "abc").Info("Deleted: /app/media/v1.mp4", "video_id", 1)

	if got := buf.String(); got != "[SafeTube Cleanup] Deleted: /app/media/v1.mp4\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestConsoleHandler_WarnIncludesAttrs(t *testing.T) {
	logger, buf := newConsole(slog.LevelInfo)

	logger.With("run_id", "abc").Warn("Error reading settings: locked", "error", errors.New("database is locked"))

	want := `[SafeTube Cleanup] Error reading settings: locked (run_id=abc error="database is locked")` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestConsoleHandler_DebugIncludesAttrs(t *testing.T) {
	logger, buf := newConsole(slog.LevelDebug)

	logger.Info("Removed DB record: id=3", "video_id", 3, "took", 2*time.Millisecond)
	logger.Debug("media file not present", "path", "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if lines[0] != "[SafeTube Cleanup] Removed DB record: id=3 (video_id=3 took=2ms)" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != `[SafeTube Cleanup] media file not present (path="")` {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestConsoleHandler_Level(t *testing.T) {
	logger, buf := newConsole(slog.LevelInfo)

	logger.Debug("not shown")
	if buf.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buf.String())
	}
}

func TestConsoleHandler_Groups(t *testing.T) {
	logger, buf := newConsole(slog.LevelDebug)

	logger.WithGroup("report").With("expired", 2).Info("done",
		slog.Group("files", "deleted", 3, "missing", 1),
	)

	want := "[SafeTube Cleanup] done (report.expired=2 report.files.deleted=3 report.files.missing=1)\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestConsoleHandler_NoTag(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, "", nil))

	logger.Info("plain")
	if got := buf.String(); got != "plain\n" {
		t.Errorf("unexpected output: %q", got)
	}
}
