package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/service"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// AnalyticsHandler отдает сводку аналитики для дашборда
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	log       *zap.Logger
}

// NewAnalyticsHandler создает обработчик аналитики
func NewAnalyticsHandler(analytics *service.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		log:       log,
	}
}

// Summary возвращает сводку за окно days
//
//	@Summary	Analytics summary of the primary profile
//	@Tags		Analytics
//	@Security	BearerAuth
//	@Param		days	query		int	false	"Window in days (7, 30, 90, 365)"
//	@Success	200		{object}	service.Summary
//	@Failure	403		{object}	ErrorResponse	"Window requires Pro"
//	@Router		/api/analytics [get]
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondServiceError(w, h.log, domain.NewValidationError("days", "must be a number"))
			return
		}
		days = parsed
	}

	summary, err := h.analytics.Summary(r.Context(), user, days)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}
