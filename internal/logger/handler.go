package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/fatih/color"
)

// PrettyHandler is a slog.Handler for human-friendly CLI output: a colored
// level badge, the message, then key=value attributes color-coded by key.
type PrettyHandler struct {
	w         io.Writer
	level     slog.Level
	addSource bool
	attrs     []slog.Attr
	groups    []string
}

func NewPrettyHandler(w io.Writer, level slog.Level, addSource bool) *PrettyHandler {
	return &PrettyHandler{w: w, level: level, addSource: addSource}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(levelBadge(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		b.WriteByte(' ')
		b.WriteString(h.formatAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(h.formatAttr(a))
		return true
	})

	if h.addSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			b.WriteByte(' ')
			b.WriteString(color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(slices.Clip(slices.Clone(h.attrs)), attrs...)
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(slices.Clip(slices.Clone(h.groups)), name)
	return &clone
}

func levelBadge(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return color.HiBlackString("[DEBUG]")
	case slog.LevelInfo:
		return color.CyanString("[INFO] ")
	case slog.LevelWarn:
		return color.YellowString("[WARN] ")
	case slog.LevelError:
		return color.RedString("[ERROR]")
	}
	return fmt.Sprintf("[%s]", level.String())
}

// attrPalette maps attribute keys to a color class so related keys read the
// same across commands.
var attrPalette = map[string]*color.Color{
	"error":        color.New(color.FgRed),
	"err":          color.New(color.FgRed),
	"duration_ms":  color.New(color.FgMagenta),
	"duration":     color.New(color.FgMagenta),
	"project":      color.New(color.FgCyan),
	"issue_type":   color.New(color.FgCyan),
	"issue_key":    color.New(color.FgCyan),
	"path":         color.New(color.FgYellow),
	"field":        color.New(color.FgYellow),
	"template":     color.New(color.FgYellow),
	"status":       color.New(color.FgGreen),
	"count":        color.New(color.FgGreen),
	"placeholders": color.New(color.FgGreen),
	"fields":       color.New(color.FgGreen),
}

func (h *PrettyHandler) formatAttr(a slog.Attr) string {
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}

	c, ok := attrPalette[key]
	if !ok {
		c = color.New(color.FgHiBlack)
	}
	return c.Sprintf("%s=%s", key, a.Value.String())
}
