package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"time"
)

// Health answers liveness and readiness probes for the control service.
type Health struct {
	base      string
	startTime time.Time
}

func NewHealth(base string) Health {
	return Health{
		base:      base,
		startTime: time.Now(),
	}
}

// Liveness handles GET /health and succeeds while the process serves.
func (h Health) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	writeJSON(w, http.StatusOK, map[string]any{
		`status`:     `healthy`,
		`service`:    `tmpfiles`,
		`started_at`: h.startTime.UTC().Format(time.RFC3339),
		`uptime_sec`: int64(uptime.Seconds()),
	})
}

// Readiness handles GET /health/ready: the store directory must exist.
func (h Health) Readiness(w http.ResponseWriter, r *http.Request) {
	info, err := os.Stat(h.base)
	switch {
	case err != nil:
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{`status`: `unhealthy`, `error`: err.Error()})
	case !info.IsDir():
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{`status`: `unhealthy`, `error`: h.base + ` is not a directory`})
	default:
		writeJSON(w, http.StatusOK, map[string]any{`status`: `healthy`, `store`: h.base})
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set(`content-type`, `application/json`)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
