// cmd/worker-manager/server.go
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"housing-workers/internal/common/database"
)

const readinessTimeout = 2 * time.Second

// opsRouter serves liveness, readiness and Prometheus metrics.
func opsRouter(deps ...database.Pinger) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
	})

	router.HandlerFunc(http.MethodGet, "/ready", func(w http.ResponseWriter, r *http.Request) {
		failures := database.CheckAll(r.Context(), readinessTimeout, deps...)
		if len(failures) == 0 {
			writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ready"})
			return
		}
		details := make(map[string]string, len(failures))
		for name, err := range failures {
			details[name] = err.Error()
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "not_ready",
			"failures": details,
		})
	})

	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return router
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

