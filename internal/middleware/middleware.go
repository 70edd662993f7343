package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Always is the chain every gateway request runs through. A negative
// compress level disables compression.
func Always(logger middleware.LogFormatter, compress int) []func(http.Handler) http.Handler {
	wares := []func(http.Handler) http.Handler{
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
		middleware.RequestLogger(logger),
		middleware.CleanPath,
	}
	if compress >= 0 {
		wares = append(wares, middleware.Compress(compress))
	}
	return wares
}

func Control(withLogger bool, logger middleware.LogFormatter) []func(http.Handler) http.Handler {
	wares := []func(http.Handler) http.Handler{
		middleware.Recoverer,
		middleware.RequestID,
		middleware.RealIP,
	}
	if withLogger {
		wares = append(wares, middleware.RequestLogger(logger))
	}
	return append(wares, middleware.CleanPath)
}
