package handler

import (
	"encoding/json"
	"net/http"

	"codequest/internal/api/middleware"
	"codequest/internal/app/service"
	"codequest/internal/common"

	"github.com/go-chi/chi/v5"
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(ts *service.TagService) *TagHandler {
	return &TagHandler{tagService: ts}
}

func (h *TagHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listTags)
	r.Get("/{tagID}", h.getTag)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/", h.createTag)
	})
}

func (h *TagHandler) createTag(w http.ResponseWriter, r *http.Request) {
	var req service.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	tag, err := h.tagService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tags)
}

func (h *TagHandler) getTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tagService.Get(r.Context(), chi.URLParam(r, "tagID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tag)
}
