package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmpfiles/internal/console"
	"tmpfiles/internal/control"
)

func TestLog(t *testing.T) {
	out := &bytes.Buffer{}
	logger := console.NewLogger(out, control.LogLevelInfo)
	h := Log(logger)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, `/log`, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "info\r\n", w.Body.String())

	form := url.Values{`level`: {`debug`}}
	req := httptest.NewRequest(http.MethodPost, `/log`, strings.NewReader(form.Encode()))
	req.Header.Set(`Content-Type`, `application/x-www-form-urlencoded`)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, control.LogLevelDebug, logger.Level())
	assert.Contains(t, out.String(), `logging.level info -> debug`)

	form = url.Values{`level`: {`loud`}}
	req = httptest.NewRequest(http.MethodPost, `/log`, strings.NewReader(form.Encode()))
	req.Header.Set(`Content-Type`, `application/x-www-form-urlencoded`)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, control.LogLevelDebug, logger.Level())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, `/log`, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealth(t *testing.T) {
	base := filepath.Join(t.TempDir(), `files`)
	h := NewHealth(base)

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, `/health`, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, `healthy`, body[`status`])
	assert.Equal(t, `tmpfiles`, body[`service`])

	w = httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, `/health/ready`, nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	require.NoError(t, os.WriteFile(base, []byte(`x`), 0644))
	w = httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, `/health/ready`, nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `is not a directory`)

	require.NoError(t, os.Remove(base))
	require.NoError(t, os.MkdirAll(base, 0755))
	w = httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, `/health/ready`, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}
