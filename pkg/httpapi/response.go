// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sunnydevs-club/parley/pkg/errors"
)

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Status: "success", Data: data})
}

// writeError maps a typed error onto its HTTP status and an error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := errors.AsError(err)
	status := errors.HTTPStatus(e.Code)

	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"code", string(e.Code),
		"status", status,
		"error", err,
	)

	writeJSON(w, status, Envelope{Status: "error", Message: e.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, errors.New(errors.CodeInvalidInput, "invalid JSON body", err))
		return false
	}
	return true
}
