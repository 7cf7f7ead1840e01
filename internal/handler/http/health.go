package http

import (
	"LinkHub-Backend/internal/repository"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler обработчик health checks
type HealthHandler struct {
	storage repository.Storage
	version string
	started time.Time
	log     *zap.Logger
}

// NewHealthHandler создает новый health handler
func NewHealthHandler(storage repository.Storage, version string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		version: version,
		started: time.Now(),
		log:     log,
	}
}

// HealthResponse структура ответа health check
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	DatabaseStatus string    `json:"database_status"`
	Uptime         string    `json:"uptime,omitempty"`
}

// Health проверяет доступность хранилища
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, dbStatus, code := "healthy", "healthy", http.StatusOK
	if err := h.storage.Ping(ctx); err != nil {
		status, dbStatus, code = "unhealthy", "unhealthy", http.StatusServiceUnavailable
		h.log.Error("database health check failed", zap.Error(err))
	}

	writeJSON(w, HealthResponse{
		Status:         status,
		Timestamp:      time.Now(),
		Version:        h.version,
		DatabaseStatus: dbStatus,
		Uptime:         time.Since(h.started).Round(time.Second).String(),
	}, code)
}

// Ready readiness probe, не зависит от базы данных
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "ready",
		"timestamp": time.Now(),
	}, http.StatusOK)
}
