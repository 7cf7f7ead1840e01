package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SocialsHandler обработчик для соцсетей профиля
type SocialsHandler struct {
	socials *service.SocialService
	log     *zap.Logger
}

// NewSocialsHandler создает новый обработчик соцсетей
func NewSocialsHandler(socials *service.SocialService, log *zap.Logger) *SocialsHandler {
	return &SocialsHandler{
		socials: socials,
		log:     log,
	}
}

// SocialResponse ответ с одной соцсетью
type SocialResponse struct {
	Social *domain.Social `json:"social"`
}

// CreateSocial добавляет соцсеть в основной профиль
//
//	@Summary	Create a social handle
//	@Tags		Socials
//	@Security	BearerAuth
//	@Param		request	body		service.SocialInput	true	"Social"
//	@Success	201		{object}	SocialResponse
//	@Failure	403		{object}	ErrorResponse	"Social limit reached"
//	@Router		/api/social [post]
func (h *SocialsHandler) CreateSocial(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req service.SocialInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	social, err := h.socials.Create(r.Context(), user, req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, SocialResponse{Social: social}, http.StatusCreated)
}

// UpdateSocial частично обновляет соцсеть
func (h *SocialsHandler) UpdateSocial(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req service.SocialPatch
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	social, err := h.socials.Update(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, SocialResponse{Social: social}, http.StatusOK)
}

// DeleteSocial удаляет соцсеть
func (h *SocialsHandler) DeleteSocial(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	if err := h.socials.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, OKResponse{OK: true}, http.StatusOK)
}

// MoveSocial сдвигает соцсеть вверх или вниз
func (h *SocialsHandler) MoveSocial(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req MoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}
	dir, err := service.ParseDirection(req.Direction)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	if err := h.socials.Move(r.Context(), user, chi.URLParam(r, "id"), dir); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, OKResponse{OK: true}, http.StatusOK)
}

// ReorderSocials задает явные позиции двум соцсетям
func (h *SocialsHandler) ReorderSocials(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req ReorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	if err := h.socials.Reorder(r.Context(), user, req.Positions); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, OKResponse{OK: true}, http.StatusOK)
}
