package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Every endpoint answers with the {success, data, error, message} envelope,
// except the username check and reservation responses which keep their own
// historical shapes. The helpers build maps rather than structs so that an
// explicit nil data still serializes as "data": null.

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *Handler) respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	h.respondJSON(w, r, status, map[string]interface{}{"success": true, "data": data})
}

func (h *Handler) respondDataMessage(w http.ResponseWriter, r *http.Request, status int, data interface{}, message string) {
	h.respondJSON(w, r, status, map[string]interface{}{"success": true, "data": data, "message": message})
}

func (h *Handler) respondMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]interface{}{"success": true, "message": message})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]interface{}{"success": false, "error": message})
}
