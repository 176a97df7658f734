package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/codewithmirza/datanyx/service"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half written 200 response.
func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, body envelope) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("Error writing response")
	}
}

func writeData(w http.ResponseWriter, log zerolog.Logger, data any) {
	writeJSON(w, log, http.StatusOK, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, log zerolog.Logger, status int, kind, msg string) {
	writeJSON(w, log, status, envelope{Success: false, Error: msg, Kind: kind})
}

// writeServiceError maps validation failures to 422 and anything else to 500.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProfile):
		writeFailure(w, log, http.StatusUnprocessableEntity, "invalid_profile", err.Error())
	case errors.Is(err, service.ErrUndefinedRatio):
		writeFailure(w, log, http.StatusUnprocessableEntity, "undefined_ratio", err.Error())
	case errors.Is(err, service.ErrInvalidLoan):
		writeFailure(w, log, http.StatusUnprocessableEntity, "invalid_loan", err.Error())
	case errors.Is(err, service.ErrInvalidRequest):
		writeFailure(w, log, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	default:
		log.Error().Err(err).Msg("Request failed")
		writeFailure(w, log, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// decodeBody reads a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, log zerolog.Logger, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debug().Err(err).Msg("Error decoding request body")
		writeFailure(w, log, http.StatusBadRequest, "bad_request", "invalid request body")
		return false
	}
	return true
}
