package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{errdef.NewBadRequest("bad"), http.StatusBadRequest},
		{errdef.NewInvalidPassword("password"), http.StatusBadRequest},
		{errdef.NewInvalidLink("link"), http.StatusBadRequest},
		{errdef.NewUnauthorized("unauthorized"), http.StatusUnauthorized},
		{errdef.NewForbidden("forbidden"), http.StatusForbidden},
		{errdef.NewNotFound("not found"), http.StatusNotFound},
		{errdef.NewDuplicated("duplicated"), http.StatusConflict},
		{errdef.NewConflict("conflict"), http.StatusConflict},
		{errdef.NewUnsupportedMediaType("media"), http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.err.Error(), w.Body.String())
		})
	}

	t.Run("UnknownErrorContainsCorrelationID", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(NewContextWithCorrelationID(c.Request.Context(), "some-id"))
		})
		r.Use(ErrorHandler())
		r.GET("/", func(c *gin.Context) {
			_ = c.Error(errors.New("boom"))
		})

		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"some-id"`)
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("KeepStatusSetByHandler", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", func(c *gin.Context) {
			_ = c.AbortWithError(http.StatusTeapot, errors.New("teapot"))
		})

		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "teapot", w.Body.String())
	})
}
