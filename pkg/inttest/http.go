package inttest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventforge/eventforge/internal/handler"
	"github.com/eventforge/eventforge/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupHTTPServer serves the engine the server uses, with routes registered by f, on a local port.
func SetupHTTPServer(t *testing.T, f func(engine *gin.Engine)) *HTTPClient {
	t.Helper()

	require.NoError(t, handler.RegisterValidation(), "failed to register validation")
	gin.SetMode(gin.TestMode)

	engine := server.GetEngine(slog.New(slog.NewTextHandler(io.Discard, nil)), "")
	f(engine)

	srv := httptest.NewServer(engine.Handler())
	client := srv.Client()
	t.Cleanup(func() {
		client.CloseIdleConnections()
		srv.Close()
	})

	return &HTTPClient{Client: client, ServerURL: srv.URL}
}

// HTTPClient sends requests to the test server and fails the test on any unexpected response.
type HTTPClient struct {
	Client    *http.Client
	ServerURL string
}

// RequestOption modifies the headers of a request.
type RequestOption = func(http.Header)

func WithHeader(key string, value string) RequestOption {
	return func(header http.Header) {
		header.Add(key, value)
	}
}

func WithBasicAuth(user string, password string) RequestOption {
	credentials := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return WithHeader("Authorization", "Basic "+credentials)
}

func WithAuthToken(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

// Get expects 200.
func (hc *HTTPClient) Get(t *testing.T, path string, options ...RequestOption) []byte {
	t.Helper()
	return hc.Do(t, http.MethodGet, path, nil, http.StatusOK, options...)
}

// Post expects 201.
func (hc *HTTPClient) Post(t *testing.T, path string, requestBody io.Reader, options ...RequestOption) []byte {
	t.Helper()
	return hc.Do(t, http.MethodPost, path, requestBody, http.StatusCreated, options...)
}

// Put expects 200.
func (hc *HTTPClient) Put(t *testing.T, path string, requestBody io.Reader, options ...RequestOption) []byte {
	t.Helper()
	return hc.Do(t, http.MethodPut, path, requestBody, http.StatusOK, options...)
}

// Delete expects 202.
func (hc *HTTPClient) Delete(t *testing.T, path string, options ...RequestOption) []byte {
	t.Helper()
	return hc.Do(t, http.MethodDelete, path, nil, http.StatusAccepted, options...)
}

// GetJSON expects 200 and decodes the JSON response into responseBody.
func (hc *HTTPClient) GetJSON(t *testing.T, path string, responseBody any, options ...RequestOption) {
	t.Helper()
	hc.doJSON(t, http.MethodGet, path, nil, http.StatusOK, responseBody, options...)
}

// PostJSON sends requestBody as JSON, expects 201 and decodes the JSON response into responseBody.
func (hc *HTTPClient) PostJSON(t *testing.T, path string, requestBody io.Reader, responseBody any, options ...RequestOption) {
	t.Helper()
	hc.doJSON(t, http.MethodPost, path, requestBody, http.StatusCreated, responseBody, options...)
}

// PutJSON sends requestBody as JSON, expects 200 and decodes the JSON response into responseBody.
func (hc *HTTPClient) PutJSON(t *testing.T, path string, requestBody io.Reader, responseBody any, options ...RequestOption) {
	t.Helper()
	hc.doJSON(t, http.MethodPut, path, requestBody, http.StatusOK, responseBody, options...)
}

func (hc *HTTPClient) doJSON(t *testing.T, method, path string, requestBody io.Reader, expectedStatus int, responseBody any, options ...RequestOption) {
	t.Helper()

	if requestBody != nil {
		options = append(options, WithHeader("Content-Type", "application/json"))
	}
	body := hc.Do(t, method, path, requestBody, expectedStatus, options...)

	require.NoError(t, json.Unmarshal(body, responseBody), requestFailed(method, path)+": failed to decode response %s", body)
}

// Do sends a request and returns the whole response body. The test fails unless the response has expectedStatus.
func (hc *HTTPClient) Do(t *testing.T, method, path string, requestBody io.Reader, expectedStatus int, options ...RequestOption) []byte {
	t.Helper()

	msg := requestFailed(method, path)
	req, err := http.NewRequest(method, hc.ServerURL+path, requestBody)
	require.NoError(t, err, msg+": failed to create request")
	for _, option := range options {
		option(req.Header)
	}

	res, err := hc.Client.Do(req)
	require.NoError(t, err, msg)
	defer func() {
		require.NoError(t, res.Body.Close(), msg+": failed to close response body")
	}()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err, msg+": failed to read response body")
	require.Equal(t, expectedStatus, res.StatusCode, msg+": unexpected status, body %s", body)
	return body
}

func requestFailed(method, path string) string {
	return fmt.Sprintf("%s %q", method, path)
}
