package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

type PrettyJSONHandlerOptions struct {
	slog.HandlerOptions
	PrettyPrint bool
}

// NewPrettyJSONHandler returns a JSON handler which optionally indents every record. Indented output is meant for
// local development only.
func NewPrettyJSONHandler(w io.Writer, opts *PrettyJSONHandlerOptions) slog.Handler {
	if opts == nil {
		opts = &PrettyJSONHandlerOptions{}
	}

	if !opts.PrettyPrint {
		return slog.NewJSONHandler(w, &opts.HandlerOptions)
	}

	h := &prettyHandler{
		writer: w,
		mu:     &sync.Mutex{},
		buf:    &bytes.Buffer{},
	}
	h.json = slog.NewJSONHandler(h.buf, &opts.HandlerOptions)
	return h
}

// prettyHandler formats records into a shared buffer using a regular JSON handler and indents the result before
// writing it. Handlers derived through WithAttrs and WithGroup share the buffer and its lock.
type prettyHandler struct {
	json   slog.Handler
	writer io.Writer
	mu     *sync.Mutex
	buf    *bytes.Buffer
}

func (h *prettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.json.Enabled(ctx, level)
}

func (h *prettyHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.buf.Reset()

	if err := h.json.Handle(ctx, r); err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, h.buf.Bytes(), "", "  "); err != nil {
		// fall back to the compact form rather than dropping the record
		_, err := h.writer.Write(h.buf.Bytes())
		return err
	}

	_, err := h.writer.Write(pretty.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyHandler{json: h.json.WithAttrs(attrs), writer: h.writer, mu: h.mu, buf: h.buf}
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	return &prettyHandler{json: h.json.WithGroup(name), writer: h.writer, mu: h.mu, buf: h.buf}
}
