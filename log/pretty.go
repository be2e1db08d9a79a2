package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI escape sequences used by the pretty handlers.
const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// prettyHandler renders colorized log records in either a key=value
// text layout or an indented JSON object. It backs both pretty formats
// so the coloring rules stay consistent between them.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	asJSON bool
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, asJSON: true}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

// WithGroup is accepted but group names are not rendered.
func (h *prettyHandler) WithGroup(string) slog.Handler {
	c := *h

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if h.asJSON {
		buf.WriteString("{\n")
	}

	n := 0
	emit := func(a slog.Attr) {
		if h.writeAttr(buf, a, n) {
			n++
		}
	}

	if !r.Time.IsZero() {
		emit(slog.Time(slog.TimeKey, r.Time))
	}

	h.writeLevel(buf, r.Level, n)
	n++

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			emit(slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	emit(slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		emit(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		emit(a)

		return true
	})

	if h.asJSON {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeLevel(buf *bytes.Buffer, level slog.Level, n int) {
	h.writeKey(buf, slog.LevelKey, n)

	buf.WriteString(levelColor(level))

	name := strings.ToUpper(Level(level).String())
	if h.asJSON {
		name = strconv.Quote(name)
	}

	buf.WriteString(name)
	buf.WriteString(ansiReset)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, n int) bool {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
		if a.Equal(slog.Attr{}) {
			return false
		}
	}

	h.writeKey(buf, a.Key, n)
	h.writeValue(buf, a.Value.Resolve())

	return true
}

func (h *prettyHandler) writeKey(buf *bytes.Buffer, key string, n int) {
	if h.asJSON {
		if n > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(ansiGray)
		buf.WriteString(strconv.Quote(key))
		buf.WriteString(ansiReset)
		buf.WriteString(": ")
	} else {
		if n > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(ansiGray)
		buf.WriteString(key)
		buf.WriteString(ansiReset)
		buf.WriteByte('=')
	}
}

func (h *prettyHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	colored := func(color, s string) {
		buf.WriteString(color)
		if h.asJSON {
			buf.WriteString(strconv.Quote(s))
		} else {
			buf.WriteString(s)
		}
		buf.WriteString(ansiReset)
	}

	// Numbers and booleans are valid JSON tokens as-is.
	bare := func(color, s string) {
		buf.WriteString(color)
		buf.WriteString(s)
		buf.WriteString(ansiReset)
	}

	switch v.Kind() {
	case slog.KindString:
		colored(ansiCyan, v.String())

	case slog.KindInt64:
		bare(ansiYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		bare(ansiYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		bare(ansiYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			bare(ansiGreen, "true")
		} else {
			bare(ansiRed, "false")
		}

	case slog.KindDuration:
		colored(ansiMagenta, v.Duration().String())

	case slog.KindTime:
		colored(ansiBlue, v.Time().String())

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			colored(levelColor(level), level.String())

			return
		}

		if h.asJSON {
			if b, err := json.Marshal(v.Any()); err == nil {
				bare(ansiCyan, string(b))

				return
			}
		}

		colored(ansiCyan, v.String())

	default:
		colored(ansiCyan, v.String())
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiBlue
	}
}
