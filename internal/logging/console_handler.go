package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// consoleHandler renders one record per line for interactive use:
//
//	15:04:05 INFO  uploading asset asset=icons/save attempt=2
//
// Attribute order follows the call site; group names prefix their members
// with dots.
type consoleHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

func newConsoleHandler(out io.Writer, level slog.Leveler) *consoleHandler {
	return &consoleHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Time.Format("15:04:05"))
	sb.WriteByte(' ')
	sb.WriteString(fmt.Sprintf("%-5s", record.Level.String()))
	sb.WriteByte(' ')
	sb.WriteString(record.Message)

	for _, attr := range h.attrs {
		writeAttr(&sb, h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&sb, h.groups, attr)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func writeAttr(sb *strings.Builder, groups []string, attr slog.Attr) {
	value := attr.Value.Resolve()
	if attr.Key == "" && value.Kind() != slog.KindGroup {
		return
	}
	if value.Kind() == slog.KindGroup {
		nested := groups
		if attr.Key != "" {
			nested = append(append([]string{}, groups...), attr.Key)
		}
		for _, member := range value.Group() {
			writeAttr(sb, nested, member)
		}
		return
	}

	sb.WriteByte(' ')
	for _, group := range groups {
		sb.WriteString(group)
		sb.WriteByte('.')
	}
	sb.WriteString(attr.Key)
	sb.WriteByte('=')
	text := value.String()
	if strings.ContainsAny(text, " \t\"") {
		text = fmt.Sprintf("%q", text)
	}
	sb.WriteString(text)
}
