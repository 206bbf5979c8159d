package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/tair/pos-engine/pkg/apperror"
	"github.com/tair/pos-engine/pkg/logger"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// OK sends a successful response
func OK(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindInsufficientStock:
		return http.StatusUnprocessableEntity
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail sends an error response. Store failures are logged and reported
// opaquely; the other kinds carry their message to the caller, and a stock
// shortage is attached as data.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)

	resp := Response{Success: false, Error: err.Error(), Kind: kind.String()}
	if kind == apperror.KindStore {
		logger.WithContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		resp.Error = "internal error"
	}
	if shortage, ok := apperror.ShortageOf(err); ok {
		resp.Data = shortage
	}

	RespondJSON(w, status, resp)
}
