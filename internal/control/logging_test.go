package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelFromString(t *testing.T) {
	for _, level := range []LogLevel{LogLevelAll, LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelNone} {
		t.Run(level.String(), func(t *testing.T) {
			got, err := LogLevelFromString(level.String())
			require.NoError(t, err)
			assert.Equal(t, level, got)
		})
	}

	got, err := LogLevelFromString(` Warn `)
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, got)

	got, err = LogLevelFromString(`verbose`)
	assert.Error(t, err)
	assert.Equal(t, DefaultLogLevel, got)
	assert.Equal(t, `invalid`, LogLevel(99).String())
}

type recordingLogger struct {
	Logger
	traces []string
	warns  []string
}

func (logger *recordingLogger) Trace(format string, args ...any) {
	logger.traces = append(logger.traces, args[0].(string))
}

func (logger *recordingLogger) Warn(format string, args ...any) {
	logger.warns = append(logger.warns, args[0].(string))
}

func TestHttpLogWriter(t *testing.T) {
	logger := &recordingLogger{}
	writer := NewHttpLogWriter(logger)

	message := []byte("http: TLS handshake error from 127.0.0.1:1234: EOF\n")
	n, err := writer.Write(message)
	require.NoError(t, err)
	assert.Equal(t, len(message), n)

	_, err = writer.Write([]byte("http: Accept error: too many open files\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{`http: TLS handshake error from 127.0.0.1:1234: EOF`}, logger.traces)
	assert.Equal(t, []string{`http: Accept error: too many open files`}, logger.warns)
}
