// internal/app/system/httpx/httpx.go

// Package httpx has the small JSON response helpers shared by every
// feature handler, including the mapping from domain errors to HTTP
// status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/limits"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error envelope: {"error": "..."}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// WriteDomainError maps a domain error onto the right HTTP status:
//
//	validation    -> 400
//	not found     -> 404
//	invalid state -> 409
//	anything else -> 500 (logged; detail not leaked to the client)
func WriteDomainError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case apperr.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error())
	case apperr.IsNotFound(err):
		WriteError(w, http.StatusNotFound, err.Error())
	case apperr.IsInvalidState(err):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		log.Error("internal error", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// DecodeJSON reads the request body into dst, rejecting unknown fields.
// The body is capped at limits.MaxJSONBodySize.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

// IsProvisionIncomplete reports whether err is the partial-success case
// where a decision was recorded but downstream provisioning failed.
func IsProvisionIncomplete(err error) bool {
	return errors.Is(err, apperr.ErrProvisionIncomplete)
}
