package handler

import (
	"net/http"

	"tmpfiles/internal/control"
)

// Log reports the current log level on GET and changes it on POST.
func Log(logger control.Logger) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set(`content-type`, `text/plain`)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(logger.Level().String() + "\r\n"))
		case http.MethodPost:
			from := logger.Level()
			if err := logger.SetLevelFromString(r.FormValue(`level`)); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			logger.Audit(`logging.level %s -> %s`, from.String(), logger.Level().String())
			w.WriteHeader(http.StatusNoContent)
		default:
			MethodNotAllowed.ServeHTTP(w, r)
		}
	})
}
