package handler

import (
	"net/http"

	"codequest/internal/api/middleware"
	"codequest/internal/app/service"
	"codequest/internal/common"
	"codequest/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(ls *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: ls}
}

func (h *LikeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{target}/{targetID}", h.listForTarget)
	r.Get("/{target}/counts", h.countsByTarget)
	r.Get("/user/{userID}", h.listForUser)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/{target}/{targetID}", h.toggle)
	})
}

func parseTarget(raw string) (model.LikeTarget, bool) {
	switch model.LikeTarget(raw) {
	case model.LikeTargetChallenge, model.LikeTargetResource, model.LikeTargetComment:
		return model.LikeTarget(raw), true
	}
	return "", false
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	target, ok := parseTarget(chi.URLParam(r, "target"))
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Unknown like target")
		return
	}

	outcome, err := h.likeService.Toggle(r.Context(), model.Like{
		UserID:   userID,
		Target:   target,
		TargetID: chi.URLParam(r, "targetID"),
	})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"result": string(outcome)})
}

func (h *LikeHandler) listForTarget(w http.ResponseWriter, r *http.Request) {
	target, ok := parseTarget(chi.URLParam(r, "target"))
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Unknown like target")
		return
	}

	likes, err := h.likeService.ListForTarget(r.Context(), target, chi.URLParam(r, "targetID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, likes)
}

func (h *LikeHandler) countsByTarget(w http.ResponseWriter, r *http.Request) {
	target, ok := parseTarget(chi.URLParam(r, "target"))
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Unknown like target")
		return
	}

	counts, err := h.likeService.CountsByTarget(r.Context(), target)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, counts)
}

func (h *LikeHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	likes, err := h.likeService.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, likes)
}
