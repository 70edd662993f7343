package console

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"tmpfiles/internal/control"
)

type Logger struct {
	level    atomic.Uint32
	mu       sync.Mutex
	out      io.Writer
	exit     func(int)
	prefixes []string
}

var _ control.Logger = (*Logger)(nil)

func NewLogger(out io.Writer, level control.LogLevel) *Logger {
	if out == nil {
		out = os.Stdout
	}
	logger := &Logger{
		out:      out,
		exit:     os.Exit,
		prefixes: []string{},
	}
	logger.level.Store(uint32(level))
	return logger
}

func (logger *Logger) Log(level string, format string, args ...any) {
	line := time.Now().UTC().Format(`2006-01-02 15:04:05`) + fmt.Sprintf(` [%-5s] `, level) + fmt.Sprintf(format, args...) + "\n"
	logger.mu.Lock()
	defer logger.mu.Unlock()
	io.WriteString(logger.out, line)
}

func (logger *Logger) Level() control.LogLevel {
	return control.LogLevel(logger.level.Load())
}

func (logger *Logger) SetLevel(level control.LogLevel) {
	logger.level.Store(uint32(level))
}

func (logger *Logger) SetLevelFromString(want string) error {
	level, err := control.LogLevelFromString(want)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

// Trim silences request log lines whose URI starts with prefix. Not safe
// to call once serving has started.
func (logger *Logger) Trim(prefix string) {
	logger.prefixes = append(logger.prefixes, prefix)
}

func (logger *Logger) Trace(format string, args ...any) {
	if logger.Level() <= control.LogLevelTrace {
		logger.Log(`trace`, format, args...)
	}
}

func (logger *Logger) Debug(format string, args ...any) {
	if logger.Level() <= control.LogLevelDebug {
		logger.Log(`debug`, format, args...)
	}
}

func (logger *Logger) Info(format string, args ...any) {
	if logger.Level() <= control.LogLevelInfo {
		logger.Log(`info`, format, args...)
	}
}

func (logger *Logger) Warn(format string, args ...any) {
	if logger.Level() <= control.LogLevelWarn {
		logger.Log(`warn`, format, args...)
	}
}

func (logger *Logger) Error(format string, args ...any) {
	if logger.Level() <= control.LogLevelError {
		logger.Log(`error`, format, args...)
	}
}

func (logger *Logger) Audit(format string, args ...any) {
	logger.Log(`audit`, format, args...)
}

func (logger *Logger) Fatal(format string, args ...any) {
	logger.Log(`fatal`, format, args...)
	logger.exit(1)
}

type LogFormatter struct {
	label  string
	logger *Logger
}

var _ middleware.LogFormatter = (*LogFormatter)(nil)

func NewLogFormatter(label string, logger *Logger) LogFormatter {
	formatter := LogFormatter{
		label:  label,
		logger: logger,
	}
	return formatter
}

func (formatter LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return LogEntry{LogFormatter: formatter, request: r}
}

type LogEntry struct {
	LogFormatter
	request *http.Request
}

var _ middleware.LogEntry = (*LogEntry)(nil)

func (entry LogEntry) Write(code int, written int, header http.Header, elapsed time.Duration, extra any) {
	req := entry.request
	for _, prefix := range entry.logger.prefixes {
		if strings.HasPrefix(req.RequestURI, prefix) {
			return
		}
	}
	if entry.logger.Level() >= control.LogLevelNone {
		return
	}
	entry.logger.Log(`serve`, `%-5s %s %d %-7s %-21s %9d %15s %s`,
		entry.label, middleware.GetReqID(req.Context()), code, req.Method, req.RemoteAddr, written, elapsed.String(), req.RequestURI)
}

func (entry LogEntry) Panic(v any, stack []byte) {
	entry.logger.Log(`panic`, `%T %+v %s`, v, v, string(stack))
}
