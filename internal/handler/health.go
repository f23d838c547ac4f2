package handler

import "net/http"

// Health handles GET /health. The process being up is the only
// precondition, so it answers 200 unconditionally without touching any
// dependency.
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
