package control

import (
	"bytes"
	"fmt"
	"strings"
)

type LogLevel uint32

const (
	LogLevelAll LogLevel = iota
	LogLevelTrace
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelNone
)

var DefaultLogLevel = LogLevelInfo

func LogLevelFromString(want string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(want)) {
	case `all`:
		return LogLevelAll, nil
	case `trace`:
		return LogLevelTrace, nil
	case `debug`:
		return LogLevelDebug, nil
	case `info`:
		return LogLevelInfo, nil
	case `warn`:
		return LogLevelWarn, nil
	case `error`:
		return LogLevelError, nil
	case `none`:
		return LogLevelNone, nil
	}
	return DefaultLogLevel, fmt.Errorf(`level "%s" is invalid`, want)
}

func (level LogLevel) String() string {
	text := `invalid`
	switch level {
	case LogLevelAll:
		text = `all`
	case LogLevelTrace:
		text = `trace`
	case LogLevelDebug:
		text = `debug`
	case LogLevelInfo:
		text = `info`
	case LogLevelWarn:
		text = `warn`
	case LogLevelError:
		text = `error`
	case LogLevelNone:
		text = `none`
	}
	return text
}

// Logger is the operator console. Audit and Fatal ignore the level.
type Logger interface {
	Level() LogLevel
	SetLevel(LogLevel)
	SetLevelFromString(string) error

	Trace(string, ...any)
	Debug(string, ...any)
	Info(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
	Audit(string, ...any)
	Fatal(string, ...any)
}

// HttpLogWriter feeds http.Server.ErrorLog into a Logger.
type HttpLogWriter struct {
	logger Logger
}

func NewHttpLogWriter(logger Logger) HttpLogWriter {
	writer := HttpLogWriter{
		logger: logger,
	}
	return writer
}

func (writer HttpLogWriter) Write(message []byte) (int, error) {
	size := len(message)
	message = bytes.TrimSpace(message)
	switch {
	case bytes.HasSuffix(message, []byte(`golang.org/issue/25192`)),
		bytes.HasPrefix(message, []byte(`http: TLS handshake error `)):
		writer.logger.Trace(`%s`, string(message))
	default:
		writer.logger.Warn(`%s`, string(message))
	}
	return size, nil
}
