package console

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmpfiles/internal/control"
)

func TestLogger_Levels(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLogger(out, control.LogLevelWarn)

	logger.Debug(`hidden %d`, 1)
	logger.Info(`hidden %d`, 2)
	logger.Warn(`shown %d`, 3)
	logger.Error(`shown %d`, 4)
	logger.Audit(`always %d`, 5)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `[warn ] shown 3`)
	assert.Contains(t, lines[1], `[error] shown 4`)
	assert.Contains(t, lines[2], `[audit] always 5`)
	assert.NotContains(t, out.String(), `hidden`)
}

func TestLogger_SetLevelFromString(t *testing.T) {
	logger := NewLogger(&bytes.Buffer{}, control.LogLevelInfo)

	require.NoError(t, logger.SetLevelFromString(`TRACE`))
	assert.Equal(t, control.LogLevelTrace, logger.Level())

	require.Error(t, logger.SetLevelFromString(`chatty`))
	assert.Equal(t, control.LogLevelTrace, logger.Level())
}

func TestLogger_Fatal(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLogger(out, control.LogLevelNone)
	code := -1
	logger.exit = func(c int) { code = c }

	logger.Fatal(`boom: %s`, errors.New(`bad`))

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), `[fatal] boom: bad`)
}

func TestLogFormatter(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLogger(out, control.LogLevelInfo)
	logger.Trim(`/quiet`)

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.RequestLogger(NewLogFormatter(`http`, logger)))
	router.Get(`/*`, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`ok`))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, `/loud`, nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, `/quiet/path`, nil))

	text := out.String()
	assert.Contains(t, text, `[serve] http`)
	assert.Contains(t, text, ` 200 GET `)
	assert.Contains(t, text, `/loud`)
	assert.NotContains(t, text, `/quiet`)
}

func TestLogFormatter_TrimHealth(t *testing.T) {
	out := &bytes.Buffer{}
	logger := NewLogger(out, control.LogLevelInfo)
	logger.Trim(`/health`)

	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(NewLogFormatter(`ctrl`, logger)))
	router.Get(`/*`, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`ok`))
	})

	for _, target := range []string{`/health`, `/health/ready`, `/log`} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `[serve] ctrl`)
	assert.Contains(t, lines[0], `/log`)
}
