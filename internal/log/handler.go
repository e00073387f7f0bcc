// Package log provides slog handlers.
package log

import (
	"context"
	"log/slog"

	"github.com/eventforge/eventforge/internal/middleware"
	"github.com/eventforge/eventforge/pkg/model"
)

// ContextHandler decorates records with the correlation id, user id and role found in the context. The keys match
// the ones of [middleware.RequestLogger]. Records logged outside a request, by the email consumer for example,
// only get what their context carries.
type ContextHandler struct {
	next slog.Handler
}

func New(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(contextAttrs(ctx)...)
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(h.next.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return New(h.next.WithGroup(name))
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if id, ok := middleware.GetCorrelationID(ctx); ok {
		attrs = append(attrs, slog.String(middleware.RequestLoggerKeyCorrelationID, id))
	}

	// public routes carry no user
	user, ok := model.GetUserFromContext(ctx)
	if !ok || user == nil {
		return attrs
	}
	return append(attrs,
		slog.Uint64(middleware.RequestLoggerKeyUser, uint64(user.ID)),
		slog.String(middleware.RequestLoggerKeyRole, user.Role),
	)
}
