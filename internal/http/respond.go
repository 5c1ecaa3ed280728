package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/panel"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondOperationError maps errors coming out of the panel controllers to
// HTTP statuses: field validation becomes 400 with per-field messages, local
// refusals 400, backend rejections keep their status, anything else is 502
// (the backend is this process's upstream).
func respondOperationError(w http.ResponseWriter, err error) {
	var fieldErrs panel.FieldErrors
	if errors.As(err, &fieldErrs) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Code:   "invalid_fields",
			Fields: fieldErrs,
		})
		return
	}
	if errors.Is(err, panel.ErrMissingOrderID) {
		respondError(w, http.StatusBadRequest, "missing_order_id", err.Error())
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.Status, "backend_rejected", apiErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "backend_unreachable", "backend request failed")
}
