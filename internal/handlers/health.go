package handlers

import (
	"database/sql"
	"net/http"
)

// Health reports liveness. Unauthenticated, never touches the store.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "IT Asset Management API is running",
	})
}

// Ready reports readiness: 200 when the database answers a ping, 503 otherwise.
func Ready(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
