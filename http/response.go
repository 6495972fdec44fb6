package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"loan-fee/domain"
	"loan-fee/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode does not leave a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("encoding response", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("writing response", "err", err)
	}
}

// writeError maps caller mistakes to 4xx and table or storage faults to 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	var oe *domain.OpError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: string(ve.Kind)})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNoEligibleTerm):
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsKind(err, domain.KindNotFound):
		writeJSON(w, logger, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: string(domain.KindNotFound)})
	case errors.As(err, &oe):
		logger.Error("request failed", "op", oe.Op, "kind", oe.Kind, "err", err)
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Error: "internal server error", Kind: string(oe.Kind)})
	default:
		logger.Error("request failed", "err", err)
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON rejects non-JSON content types and unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		writeJSON(w, logger, http.StatusUnsupportedMediaType, errorResponse{Error: "Content-Type must be application/json"})
		return false
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		logger.Debug("decoding request body", "err", err)
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
