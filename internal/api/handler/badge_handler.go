package handler

import (
	"encoding/json"
	"net/http"

	"codequest/internal/api/middleware"
	"codequest/internal/app/service"
	"codequest/internal/common"

	"github.com/go-chi/chi/v5"
)

type BadgeHandler struct {
	badgeService *service.BadgeService
}

func NewBadgeHandler(bs *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: bs}
}

func (h *BadgeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listBadges)
	r.Get("/{badgeID}", h.getBadge)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/", h.createBadge)
		admin.Put("/{badgeID}", h.updateBadge)
		admin.Delete("/{badgeID}", h.deleteBadge)
		admin.Post("/{badgeID}/award/{userID}", h.awardBadge)
	})
}

func (h *BadgeHandler) createBadge(w http.ResponseWriter, r *http.Request) {
	var req service.BadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	badge, err := h.badgeService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, badge)
}

func (h *BadgeHandler) listBadges(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	badges, err := h.badgeService.List(r.Context(), limit, offset)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, badges)
}

func (h *BadgeHandler) getBadge(w http.ResponseWriter, r *http.Request) {
	badge, err := h.badgeService.Get(r.Context(), chi.URLParam(r, "badgeID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, badge)
}

func (h *BadgeHandler) updateBadge(w http.ResponseWriter, r *http.Request) {
	var req service.BadgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	badge, err := h.badgeService.Update(r.Context(), chi.URLParam(r, "badgeID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, badge)
}

func (h *BadgeHandler) deleteBadge(w http.ResponseWriter, r *http.Request) {
	if err := h.badgeService.Delete(r.Context(), chi.URLParam(r, "badgeID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "badge deleted"})
}

func (h *BadgeHandler) awardBadge(w http.ResponseWriter, r *http.Request) {
	err := h.badgeService.Award(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "badgeID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "badge awarded"})
}
