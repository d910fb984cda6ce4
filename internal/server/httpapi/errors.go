package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/famvault/media-gateway/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFromError maps a classified error to its HTTP status. The mapping is
// total: anything not carrying a known sentinel is an internal error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// safeMessage returns the client-visible message for err. Validation errors
// carry their detail (it only ever names the caller's own fields); all other
// kinds collapse to a fixed phrase so nothing internal leaks.
func safeMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorInvalidRequest):
		return err.Error()
	case errors.Is(err, common.ErrorUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, common.ErrorForbidden):
		return "forbidden"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	default:
		return "internal error"
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), errorResponse{Error: safeMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
