package http

import (
	"LinkHub-Backend/internal/auth"
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LinksHandler обработчик для работы со ссылками профиля
type LinksHandler struct {
	links *service.LinkService
	log   *zap.Logger
}

// NewLinksHandler создает новый обработчик ссылок
func NewLinksHandler(links *service.LinkService, log *zap.Logger) *LinksHandler {
	return &LinksHandler{
		links: links,
		log:   log,
	}
}

// MoveRequest запрос сдвига элемента на одну позицию
type MoveRequest struct {
	Direction string `json:"direction"`
}

// ReorderRequest запрос явных позиций для двух элементов
type ReorderRequest struct {
	Positions []service.Position `json:"positions"`
}

// LinkResponse ответ с одной ссылкой
type LinkResponse struct {
	Link *domain.Link `json:"link"`
}

// OKResponse ответ без данных
type OKResponse struct {
	OK bool `json:"ok"`
}

// CreateLink создает новую ссылку в основном профиле
//
//	@Summary		Create a link
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		service.LinkInput	true	"Link"
//	@Success		201		{object}	LinkResponse
//	@Failure		403		{object}	ErrorResponse	"Link limit reached"
//	@Failure		422		{object}	ErrorResponse	"Invalid link"
//	@Router			/api/link [post]
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req service.LinkInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	link, err := h.links.Create(r.Context(), user, req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	h.log.Info("created link", zap.String("link_id", link.ID), zap.String("user_id", user.ID))
	writeJSON(w, LinkResponse{Link: link}, http.StatusCreated)
}

// UpdateLink частично обновляет ссылку
//
//	@Summary		Update a link
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Link ID"
//	@Param			request	body		service.LinkPatch	true	"Fields to change"
//	@Success		200		{object}	LinkResponse
//	@Failure		403		{object}	ErrorResponse	"Access denied"
//	@Failure		404		{object}	ErrorResponse	"Link not found"
//	@Router			/api/link/{id} [patch]
func (h *LinksHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req service.LinkPatch
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	link, err := h.links.Update(r.Context(), user, chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, LinkResponse{Link: link}, http.StatusOK)
}

// DeleteLink удаляет ссылку. Удаление несуществующей ссылки успешно.
//
//	@Summary		Delete a link
//	@Tags			Links
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Link ID"
//	@Success		200	{object}	OKResponse
//	@Failure		403	{object}	ErrorResponse	"Access denied"
//	@Router			/api/link/{id} [delete]
func (h *LinksHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	if err := h.links.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, OKResponse{OK: true}, http.StatusOK)
}

// MoveLink сдвигает ссылку вверх или вниз
//
//	@Summary		Move a link one position
//	@Tags			Links
//	@Accept			json
//	@Security		BearerAuth
//	@Param			id		path		string		true	"Link ID"
//	@Param			request	body		MoveRequest	true	"up or down"
//	@Success		200		{object}	OKResponse
//	@Failure		404		{object}	ErrorResponse	"Link not found"
//	@Router			/api/link/{id}/move [post]
func (h *LinksHandler) MoveLink(w http.ResponseWriter, r *http.Request) {
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

	if err := h.links.Move(r.Context(), user, chi.URLParam(r, "id"), dir); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, OKResponse{OK: true}, http.StatusOK)
}

// ReorderLinks задает явные позиции двум ссылкам
//
//	@Summary		Swap positions of two links
//	@Tags			Links
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body		ReorderRequest	true	"Two positions"
//	@Success		200		{object}	OKResponse
//	@Failure		404		{object}	ErrorResponse	"Link not found"
//	@Failure		422		{object}	ErrorResponse	"Positions are not a permutation"
//	@Router			/api/link/reorder [post]
func (h *LinksHandler) ReorderLinks(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	var req ReorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "invalid request format", "invalid_body", http.StatusBadRequest)
		return
	}

	if err := h.links.Reorder(r.Context(), user, req.Positions); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	writeJSON(w, OKResponse{OK: true}, http.StatusOK)
}
