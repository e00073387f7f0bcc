package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Time(a.Key, time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	}
	return a
}

func decode(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	return got
}

func TestPrettyJSONHandler(t *testing.T) {
	for _, prettyPrint := range []bool{true, false} {
		t.Run(map[bool]string{true: "Indented", false: "Compact"}[prettyPrint], func(t *testing.T) {
			var buf bytes.Buffer
			opts := &PrettyJSONHandlerOptions{
				HandlerOptions: slog.HandlerOptions{ReplaceAttr: fixedTime},
				PrettyPrint:    prettyPrint,
			}
			logger := slog.New(NewPrettyJSONHandler(&buf, opts))

			logger.Info("event published", "eventId", 42, "oneTime", true, "organisation", "Добро сърце")

			out := buf.String()
			assert.Equal(t, "\n", out[len(out)-1:])
			assert.Equal(t, prettyPrint, bytes.Contains(buf.Bytes(), []byte("\n  ")))

			got := decode(t, buf.Bytes())
			assert.Equal(t, "INFO", got["level"])
			assert.Equal(t, "event published", got["msg"])
			assert.Equal(t, "2024-06-01T12:00:00Z", got["time"])
			assert.EqualValues(t, 42, got["eventId"])
			assert.Equal(t, true, got["oneTime"])
			assert.Equal(t, "Добро сърце", got["organisation"])
		})
	}
}

func TestPrettyJSONHandler_NilOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyJSONHandler(&buf, nil))

	logger.Debug("hidden")
	logger.Info("shown")

	got := decode(t, buf.Bytes())
	assert.Equal(t, "shown", got["msg"])
}

func TestPrettyJSONHandler_KeepsRecordWhenIndentFails(t *testing.T) {
	var buf bytes.Buffer
	opts := &PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.MessageKey {
					return slog.String(a.Key, string([]byte{0xFF, 0xFE}))
				}
				return a
			},
		},
		PrettyPrint: true,
	}
	logger := slog.New(NewPrettyJSONHandler(&buf, opts))

	logger.Info("mail sent")

	assert.NotZero(t, buf.Len())
}

func TestPrettyJSONHandler_DerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewPrettyJSONHandler(&buf, &PrettyJSONHandlerOptions{PrettyPrint: true}))

	logger.With("queue", "email").WithGroup("delivery").Info("retrying", "attempt", 1)

	assert.Contains(t, buf.String(), "\n  ")
	got := decode(t, buf.Bytes())
	assert.Equal(t, "email", got["queue"])
	assert.Equal(t, map[string]any{"attempt": float64(1)}, got["delivery"])
}
