package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; job posting HTML is the largest expected input.
const maxBodyBytes = 1 << 20

// validatable is implemented by every request type in internal/types.
type validatable interface {
	Validate() error
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, map[string]string{"error": message})
}

// decodeJSON reads a size-limited JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, logger, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// decodeAndValidate decodes the body and runs its struct validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst validatable) bool {
	if !decodeJSON(w, r, logger, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		writeError(w, logger, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}
