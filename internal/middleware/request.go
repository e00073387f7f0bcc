package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Attribute keys shared by the [RequestLogger] and the context aware log handler.
const (
	RequestLoggerKeyCorrelationID = "correlationId"
	RequestLoggerKeyUser          = "user"
	RequestLoggerKeyRole          = "role"
)

// CorrelationIDHeader carries the correlation id in both directions. Clients and proxies may set it to follow a
// request through the logs, the response always echoes the id in use.
const CorrelationIDHeader = "X-Correlation-ID"

const maxCorrelationIDLength = 64

type ctxKey int

var correlationIDKey ctxKey

// CorrelationID stores a correlation id in the request context. An id given by the caller is kept unless it is
// blank or too long, otherwise a new one is generated.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" || len(id) > maxCorrelationIDLength {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(NewContextWithCorrelationID(c.Request.Context(), id))
		c.Header(CorrelationIDHeader, id)

		c.Next()
	}
}

func NewContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// GetCorrelationID returns the correlation id set by [CorrelationID] or by a message consumer.
func GetCorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey).(string)
	return id, ok
}

// RequestLogger writes one record per request. Successful requests to any of the skipped routes (like the health
// check polled by the load balancer) are not logged. Client errors are logged as warnings and server errors as
// errors, both with the errors collected by the handlers.
func RequestLogger(logger *slog.Logger, skipRoutes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusBadRequest && slices.Contains(skipRoutes, c.FullPath()) {
			return
		}

		level := levelOf(status)
		attrs := []slog.Attr{requestAttr(c, start), responseAttr(status, time.Since(start))}
		if level > slog.LevelInfo {
			attrs = append(attrs, slog.String("error", c.Errors.String()))
		}

		logger.LogAttrs(c.Request.Context(), level, "Processed HTTP request", attrs...)
	}
}

func levelOf(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func requestAttr(c *gin.Context, start time.Time) slog.Attr {
	params := make(map[string]string, len(c.Params))
	for _, param := range c.Params {
		params[param.Key] = param.Value
	}

	return slog.Group("request",
		slog.Time("time", start),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("route", c.FullPath()),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Any("params", params),
		slog.Int64("contentLength", c.Request.ContentLength),
		slog.String("userAgent", c.Request.UserAgent()),
		slog.String("ip", c.ClientIP()),
	)
}

func responseAttr(status int, latency time.Duration) slog.Attr {
	return slog.Group("response",
		slog.Duration("latency", latency),
		slog.Int("status", status),
	)
}
