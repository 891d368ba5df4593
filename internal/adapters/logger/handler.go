package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/brisk/internal/ui/output"
	"go.trai.ch/brisk/internal/ui/style"
)

// PrettyHandler is a slog.Handler writing one colored line per record.
// A leading "[scope]" tag in the message, such as "[watch]", is rendered bold.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// attrs are pre-rendered key=value pairs, qualified by the group open when they were added.
	attrs  []string
	prefix string
}

type levelStyle struct {
	icon  string
	color termenv.Color
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyle{icon: style.Cross, color: termenv.RGBColor(style.Red)}
	case level >= slog.LevelWarn:
		return levelStyle{icon: style.Warning, color: termenv.RGBColor(style.Yellow)}
	default:
		return levelStyle{color: termenv.RGBColor(style.Slate)}
	}
}

// NewPrettyHandler creates a PrettyHandler writing to w, or stderr when w is nil.
// The level is read on every record, so a *slog.LevelVar can be adjusted later.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls := styleFor(r.Level)

	var line strings.Builder
	if ls.icon != "" {
		line.WriteString(h.out.String(ls.icon + " ").Foreground(ls.color).String())
	}

	scope, text := splitScope(r.Message)
	if scope != "" {
		line.WriteString(h.out.String(scope).Foreground(ls.color).Bold().String())
		line.WriteString(" ")
	}

	parts := make([]string, 0, len(h.attrs)+r.NumAttrs()+1)
	parts = append(parts, text)
	parts = append(parts, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(h.prefix, attr))
		return true
	})
	line.WriteString(h.out.String(strings.Join(parts, " ")).Foreground(ls.color).String())
	line.WriteString("\n")

	_, err := h.out.WriteString(line.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]string, len(h.attrs), len(h.attrs)+len(attrs))
	copy(clone.attrs, h.attrs)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, formatAttr(h.prefix, attr))
	}
	return &clone
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// splitScope separates a leading "[scope]" tag from msg.
func splitScope(msg string) (string, string) {
	if !strings.HasPrefix(msg, "[") {
		return "", msg
	}
	end := strings.IndexByte(msg, ']')
	if end < 0 {
		return "", msg
	}
	return msg[:end+1], strings.TrimPrefix(msg[end+1:], " ")
}

func formatAttr(prefix string, attr slog.Attr) string {
	return prefix + attr.Key + "=" + attr.Value.String()
}
