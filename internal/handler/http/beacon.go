package http

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/service"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	maxBeaconBody      = 8 << 10
	maxMultipartMemory = 32 << 10
)

// BeaconHandler принимает клики и просмотры от публичных страниц
type BeaconHandler struct {
	engagement *service.EngagementService
	trustProxy bool
	log        *zap.Logger
}

// NewBeaconHandler создает обработчик beacon запросов
func NewBeaconHandler(engagement *service.EngagementService, trustProxy bool, log *zap.Logger) *BeaconHandler {
	return &BeaconHandler{
		engagement: engagement,
		trustProxy: trustProxy,
		log:        log,
	}
}

// Click записывает клик по ссылке
//
//	@Summary		Record a link click
//	@Tags			Tracking
//	@Accept			json,x-www-form-urlencoded,mpfd
//	@Param			linkId	body	string	true	"Link ID"
//	@Success		204		"Click recorded"
//	@Failure		400		{object}	ErrorResponse	"Missing link id"
//	@Failure		404		{object}	ErrorResponse	"Link not found"
//	@Router			/api/click [post]
func (h *BeaconHandler) Click(w http.ResponseWriter, r *http.Request) {
	linkID := readIdentifier(w, r, "linkId")
	if linkID == "" {
		writeError(w, "linkId is required", "validation_error", http.StatusBadRequest)
		return
	}

	err := h.engagement.RecordClick(r.Context(), linkID, h.meta(r))
	h.finish(w, err, zap.String("link_id", linkID))
}

// View записывает просмотр профиля
//
//	@Summary		Record a profile view
//	@Tags			Tracking
//	@Accept			json,x-www-form-urlencoded,mpfd
//	@Param			profileId	body	string	true	"Profile ID"
//	@Success		204			"View recorded"
//	@Failure		400			{object}	ErrorResponse	"Missing profile id"
//	@Failure		404			{object}	ErrorResponse	"Profile not found"
//	@Router			/api/view [post]
func (h *BeaconHandler) View(w http.ResponseWriter, r *http.Request) {
	profileID := readIdentifier(w, r, "profileId")
	if profileID == "" {
		writeError(w, "profileId is required", "validation_error", http.StatusBadRequest)
		return
	}

	err := h.engagement.RecordView(r.Context(), profileID, h.meta(r))
	h.finish(w, err, zap.String("profile_id", profileID))
}

// finish отвечает 204 даже при сбое хранилища: трекинг best-effort
func (h *BeaconHandler) finish(w http.ResponseWriter, err error, field zap.Field) {
	var vErr *domain.ValidationError
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, "not found", "not_found", http.StatusNotFound)
		return
	case errors.As(err, &vErr):
		writeJSON(w, ErrorResponse{Error: "validation failed", Code: "validation_error", Fields: vErr.Fields}, http.StatusBadRequest)
		return
	default:
		h.log.Warn("failed to record engagement", field, zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BeaconHandler) meta(r *http.Request) service.RequestMeta {
	return service.RequestMeta{
		IP:        clientIP(r, h.trustProxy),
		Referrer:  r.Referer(),
		UserAgent: r.UserAgent(),
	}
}

// readIdentifier достает идентификатор из JSON, form-urlencoded или multipart тела.
// Пустая строка означает, что идентификатор не передан.
func readIdentifier(w http.ResponseWriter, r *http.Request, field string) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBeaconBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return strings.TrimSpace(r.PostForm.Get(field))
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return ""
		}
		if values := r.MultipartForm.Value[field]; len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
		return ""
	default:
		// navigator.sendBeacon с Blob присылает JSON как text/plain
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return ""
		}
		id, _ := body[field].(string)
		return strings.TrimSpace(id)
	}
}
