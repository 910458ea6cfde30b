package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebundle/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		minLevel   slog.Level
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", minLevel: slog.LevelInfo, level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", minLevel: slog.LevelInfo, level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", minLevel: slog.LevelInfo, level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", minLevel: slog.LevelInfo, level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
		{name: "debug level enabled", minLevel: slog.LevelDebug, level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: tt.minLevel})
			slog.New(handler).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		msg        string
		goldenName string
	}{
		{
			name:       "single attribute",
			attrs:      []slog.Attr{slog.String("key", "value")},
			msg:        "single attr message",
			goldenName: "handler_attrs_single",
		},
		{
			name:       "multiple attributes",
			attrs:      []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)},
			msg:        "multi attr message",
			goldenName: "handler_attrs_multi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, nil).WithAttrs(tt.attrs)
			slog.New(handler).Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil).WithGroup("bundle")
	slog.New(handler).Info("grouped message", "entry", "/proj/a.js")

	g := goldie.New(t)
	g.Assert(t, "handler_group", buf.Bytes())
}

func TestPrettyHandler_AttrValues(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	slog.New(logger.NewPrettyHandler(buf, nil)).Info("bundled",
		"entry", "/proj/src/main entry.js",
		"took", 1234567*time.Microsecond,
		"quick", 300*time.Microsecond,
		"files", 3,
		"bundler", "",
		"err", errors.New("boom"),
	)

	g := goldie.New(t)
	g.Assert(t, "handler_attr_values", buf.Bytes())
}

func TestPrettyHandler_NestedGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil).
		WithAttrs([]slog.Attr{slog.String("session", "dev")}).
		WithGroup("bundle")
	slog.New(handler).Info("cached",
		slog.Group("cache", slog.Int("files", 2), slog.String("etag", "00000000000000ff")),
		slog.Group("empty"),
	)

	g := goldie.New(t)
	g.Assert(t, "handler_nested_groups", buf.Bytes())
}

func TestPrettyHandler_LevelVarIsLive(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	level := &slog.LevelVar{}
	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}))

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	level.Set(slog.LevelDebug)
	lg.Debug("shown")
	assert.Equal(t, "~ shown\n", buf.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	handler := logger.NewPrettyHandler(brokenWriter{}, nil)
	err := handler.Handle(t.Context(), slog.Record{Level: slog.LevelInfo, Message: "lost"})
	require.Error(t, err)
}
