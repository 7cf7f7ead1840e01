package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/service"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler обработчик профилей и публичных страниц
type ProfileHandler struct {
	profiles   *service.ProfileService
	engagement *service.EngagementService
	trustProxy bool
	log        *zap.Logger
}

// NewProfileHandler создает обработчик профилей
func NewProfileHandler(profiles *service.ProfileService, engagement *service.EngagementService, trustProxy bool, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:   profiles,
		engagement: engagement,
		trustProxy: trustProxy,
		log:        log,
	}
}

// ProfileResponse ответ с одним профилем
type ProfileResponse struct {
	Profile *domain.Profile `json:"profile"`
}

// MeResponse профили текущего пользователя, основной первым
type MeResponse struct {
	UserID   string           `json:"userId"`
	Plan     domain.Plan      `json:"plan"`
	Profiles []domain.Profile `json:"profiles"`
}

// Me возвращает профили текущего пользователя
//
//	@Summary	Current user's profiles
//	@Tags		Profile
//	@Security	BearerAuth
//	@Success	200	{object}	MeResponse
//	@Router		/api/me [get]
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	dashboard, err := h.profiles.Dashboard(r.Context(), user)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, MeResponse{UserID: user.ID, Plan: user.Plan, Profiles: dashboard.Profiles}, http.StatusOK)
}

// CreateProfile привязывает хэндл к пользователю
//
//	@Summary	Create a profile
//	@Tags		Profile
//	@Security	BearerAuth
//	@Param		request	body		service.CreateProfileInput	true	"Handle"
//	@Success	201		{object}	ProfileResponse
//	@Failure	409		{object}	ErrorResponse	"Handle already in use"
//	@Router		/api/profile [post]
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req service.CreateProfileInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	profile, err := h.profiles.Create(r.Context(), user, req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, ProfileResponse{Profile: profile}, http.StatusCreated)
}

// UpdateProfile обновляет основной профиль
//
//	@Summary	Update the primary profile
//	@Tags		Profile
//	@Security	BearerAuth
//	@Param		request	body		service.UpdateProfileInput	true	"Fields to change"
//	@Success	200		{object}	ProfileResponse
//	@Failure	403		{object}	ErrorResponse	"Upgrade required"
//	@Router		/api/profile [patch]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req service.UpdateProfileInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	profile, err := h.profiles.Update(r.Context(), user, req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, ProfileResponse{Profile: profile}, http.StatusOK)
}

// PublicPage отдает публичную страницу и записывает просмотр
//
//	@Summary	Public page by handle
//	@Tags		Public
//	@Param		handle	path		string	true	"Handle"
//	@Success	200		{object}	service.PublicPage
//	@Failure	404		{object}	ErrorResponse	"Profile not found"
//	@Router		/p/{handle} [get]
func (h *ProfileHandler) PublicPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.profiles.PublicPage(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	meta := service.RequestMeta{
		IP:        clientIP(r, h.trustProxy),
		Referrer:  r.Referer(),
		UserAgent: r.UserAgent(),
	}
	if err := h.engagement.RecordView(r.Context(), page.Profile.ID, meta); err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.log.Warn("failed to record page view", zap.String("profile_id", page.Profile.ID), zap.Error(err))
	}

	writeJSON(w, page, http.StatusOK)
}
