package http

import (
	"LinkHub-Backend/internal/domain"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxJSONBody = 64 << 10

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message, code string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// decodeJSON читает JSON тело запроса в v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// respondServiceError переводит доменную ошибку в HTTP ответ
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	var vErr *domain.ValidationError
	var qErr *domain.QuotaError
	var fErr *domain.ForbiddenError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, ErrorResponse{Error: "validation failed", Code: "validation_error", Fields: vErr.Fields}, http.StatusUnprocessableEntity)
	case errors.As(err, &qErr):
		writeError(w, qErr.Error(), "limit_reached", http.StatusForbidden)
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, "limit reached", "limit_reached", http.StatusForbidden)
	case errors.As(err, &fErr):
		writeError(w, fErr.Reason, "forbidden", http.StatusForbidden)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, "forbidden", "forbidden", http.StatusForbidden)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, "not found", "not_found", http.StatusNotFound)
	case errors.Is(err, domain.ErrHandleTaken):
		writeError(w, "handle already in use", "handle_taken", http.StatusConflict)
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Warn("store unavailable", zap.Error(err))
		writeError(w, "service temporarily unavailable", "unavailable", http.StatusServiceUnavailable)
	default:
		log.Error("unhandled service error", zap.Error(err))
		writeError(w, "internal server error", "internal", http.StatusInternalServerError)
	}
}
