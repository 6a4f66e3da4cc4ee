package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/denv/internal/ui/output"
	"go.trai.ch/denv/internal/ui/style"
)

// consoleHandler is the slog.Handler behind pretty mode. Warnings and errors
// carry an icon prefix and every line is colored through the shared UI
// styles, so log output blends with the rest of the CLI.
type consoleHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &consoleHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	msg, color := decorate(r.Level, r.Message)

	if attrs := h.attrLine(r); attrs != "" {
		msg += " " + attrs
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// decorate maps a record level to its icon prefix and line color.
func decorate(level slog.Level, msg string) (string, termenv.Color) {
	switch level {
	case slog.LevelWarn:
		return style.Warning + " " + msg, termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return style.Cross + " " + msg, termenv.RGBColor(string(style.Red))
	default:
		return msg, termenv.RGBColor(string(style.Slate))
	}
}

// attrLine renders handler-level attrs followed by record-level attrs as a
// single space-joined key=value line.
func (h *consoleHandler) attrLine(r slog.Record) string {
	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		parts = append(parts, h.qualify(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, h.qualify(attr))
		return true
	})
	return strings.Join(parts, " ")
}

// qualify prefixes the attribute key with the open group, if any.
func (h *consoleHandler) qualify(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return key + "=" + attr.Value.String()
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &consoleHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &consoleHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}
