package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/folio/backend/internal/contract"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// writeMessage writes the {"message": ...} error shape.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, contract.ErrorResponse{Message: message})
}
