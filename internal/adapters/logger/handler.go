package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/prebundle/internal/ui/output"
	"go.trai.ch/prebundle/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record:
// a level marker, the message, then the attributes in a faint key=value tail.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	fields []string // attributes from WithAttrs, already qualified and formatted
	groups []string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or to stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	marker, color := decorate(r.Level)

	head := r.Message
	if marker != "" {
		head = marker + " " + head
	}
	line := h.out.String(head).Foreground(termenv.RGBColor(string(color))).String()

	fields := slices.Clip(h.fields)
	r.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.groups, attr)
		return true
	})
	if len(fields) > 0 {
		tail := strings.Join(fields, " ")
		if h.out.Profile != termenv.Ascii {
			tail = h.out.String(tail).Faint().String()
		}
		line += " " + tail
	}

	_, err := h.out.WriteString(line + "\n")
	return err
}

// WithAttrs returns a handler that adds attrs, qualified by the current groups, to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	next := *h
	next.fields = slices.Clip(h.fields)
	for _, attr := range attrs {
		next.fields = appendField(next.fields, h.groups, attr)
	}
	return &next
}

// WithGroup returns a handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.groups = append(slices.Clip(h.groups), name)
	return &next
}

// decorate returns the marker and color of a level. Info has no marker.
func decorate(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	case level >= slog.LevelInfo:
		return "", style.Slate
	default:
		return style.Tilde, style.Iris
	}
}

// appendField renders attr as key=value. Group values are flattened into dotted keys.
func appendField(dst, groups []string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}

	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			groups = append(slices.Clip(groups), attr.Key)
		}
		for _, member := range attr.Value.Group() {
			dst = appendField(dst, groups, member)
		}
		return dst
	}

	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	return append(dst, key+"="+formatValue(attr.Value))
}

// formatValue keeps paths and counts bare, quotes strings that would break the
// key=value layout, and rounds durations to milliseconds.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return quoteIfNeeded(v.String())
	case slog.KindDuration:
		if d := v.Duration(); d >= time.Millisecond {
			return d.Round(time.Millisecond).String()
		}
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return strconv.Quote(err.Error())
		}
	default:
	}
	return v.String()
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
