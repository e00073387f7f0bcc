package server

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	engine := GetEngine(slog.New(slog.NewJSONHandler(&logs, nil)), "/api")
	engine.GET("/api/panic", func(c *gin.Context) { panic("boom") })

	t.Run("Health", func(t *testing.T) {
		logs.Reset()
		w := httptest.NewRecorder()

		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status": "UP"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
		assert.Zero(t, logs.Len(), "health checks are not logged")
	})

	t.Run("CORSExposesCorrelationID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://eventforge.example")

		engine.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Correlation-Id")
	})

	t.Run("RecoversFromPanic", func(t *testing.T) {
		logs.Reset()
		w := httptest.NewRecorder()

		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		b, err := io.ReadAll(&logs)
		require.NoError(t, err)
		assert.Contains(t, string(b), "Recovered from panic")
	})
}
