package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/nmoreno/ventapos/internal/adapter/http/dto"
	"github.com/nmoreno/ventapos/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response. Internal failure detail is
// logged server-side and never serialized into the body.
func writeError(w http.ResponseWriter, status int, message, details string) {
	if status >= http.StatusInternalServerError {
		log.Error().Str("detail", details).Msg(message)
		details = ""
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSaleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativePrice):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativeStock):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultValue
	}
	return i
}
