package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ConsoleHandler writes one line per record: the tag, the message and, for
// warnings, errors or when debug logging is on, the record's attributes.
//
//	[SafeTube Cleanup] Removing videos older than 7 days
//	[SafeTube Cleanup] Skipped: /app/media/../etc (video_id=4 reason="outside media root")
type ConsoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	tag    string
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewConsoleHandler creates a console handler writing to w.
func NewConsoleHandler(w io.Writer, tag string, level slog.Leveler) *ConsoleHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		tag:   tag,
		level: level,
	}
}

// Enabled reports whether records at level are written.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if h.tag != "" {
		buf.WriteString(h.tag)
		buf.WriteByte(' ')
	}
	buf.WriteString(r.Message)

	if r.Level >= slog.LevelWarn || h.level.Level() <= slog.LevelDebug {
		var fields []string
		prefix := strings.Join(h.groups, ".")
		for _, a := range h.attrs {
			fields = appendAttr(fields, "", a)
		}
		r.Attrs(func(a slog.Attr) bool {
			fields = appendAttr(fields, prefix, a)
			return true
		})
		if len(fields) > 0 {
			buf.WriteString(" (")
			buf.WriteString(strings.Join(fields, " "))
			buf.WriteByte(')')
		}
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that includes attrs in every record.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	prefix := strings.Join(h.groups, ".")
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// appendAttr formats a as key=value, flattening groups.
func appendAttr(fields []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	}

	return append(fields, key+"="+formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		s = v.Duration().String()
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
