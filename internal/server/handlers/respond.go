package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"stockroom/pkg/api"
)

// sendJSON writes a JSON response with the given status
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes the auth-surface error envelope
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{Success: false, Message: message}, statusCode)
}

// sendItemError writes the inventory-surface error envelope
func sendItemError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ItemErrorResponse{Error: message}, statusCode)
}
