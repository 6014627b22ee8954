package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"aidat/internal/core"
)

// errorBody is the error envelope for every non-2xx API response.
type errorBody struct {
	Error string `json:"error"`
}

// savedBody wraps a successful mutation result. Warning is set when the
// change is live in memory but could not be written to the snapshot store.
type savedBody struct {
	Data    any    `json:"data"`
	Warning string `json:"warning,omitempty"`
}

const persistenceWarning = "change applied but not persisted; it will be lost on restart"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeSaved reports a successful mutation. A persistence error downgrades
// nothing: the mutation stands, the response carries a warning instead.
func writeSaved(w http.ResponseWriter, r *http.Request, status int, data any, saveErr error) {
	body := savedBody{Data: data}
	if saveErr != nil {
		slog.ErrorContext(r.Context(), "Snapshot save failed", "error", saveErr,
			"method", r.Method, "path", r.URL.Path)
		body.Warning = persistenceWarning
	}
	writeJSON(w, status, body)
}

// writeDomainError maps validation sentinels to 422 and everything else to
// 500. Month-key and date errors from request bodies count as validation.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyFlatNo),
		errors.Is(err, core.ErrEmptyFullName),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidMonthKey),
		errors.Is(err, core.ErrMonthOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
