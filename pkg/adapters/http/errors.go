package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/stagedup/pkg/domain"
)

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrStageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStageID),
		errors.Is(err, domain.ErrInvalidPath),
		errors.Is(err, domain.ErrPrimNotFound),
		errors.Is(err, domain.ErrPrimExists),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrCountNotPositive),
		errors.Is(err, domain.ErrEmptySelection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
