package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logger"
)

// maxBodyBytes caps request bodies; an asset payload is a few hundred bytes.
const maxBodyBytes = 1 << 20

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Get().Errorw("failed to encode JSON", "error", err)
		}
	}
}

// parseJSON decodes the request body into a value of type T.
// Unknown fields and trailing data are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is required")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is required")
		}
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return v, errors.New("request body must contain a single JSON object")
	}
	return v, nil
}
