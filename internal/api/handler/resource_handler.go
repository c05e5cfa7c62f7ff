package handler

import (
	"encoding/json"
	"net/http"

	"codequest/internal/api/middleware"
	"codequest/internal/app/service"
	"codequest/internal/common"

	"github.com/go-chi/chi/v5"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
	commentService  *service.CommentService
}

func NewResourceHandler(rs *service.ResourceService, cms *service.CommentService) *ResourceHandler {
	return &ResourceHandler{resourceService: rs, commentService: cms}
}

func (h *ResourceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listResources)
	r.Get("/{resourceID}", h.getResource)
	r.Get("/{resourceID}/tags", h.getTags)
	r.Get("/{resourceID}/comments", h.listComments)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/{resourceID}/comments", h.addComment)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/", h.createResource)
		admin.Delete("/{resourceID}", h.deleteResource)
	})
}

func (h *ResourceHandler) createResource(w http.ResponseWriter, r *http.Request) {
	var req service.ResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resource, err := h.resourceService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resource)
}

func (h *ResourceHandler) listResources(w http.ResponseWriter, r *http.Request) {
	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		resources, err := h.resourceService.Filter(r.Context(), sortBy)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		common.RespondWithJSON(w, http.StatusOK, resources)
		return
	}

	limit, offset := paginationParams(r)
	resources, err := h.resourceService.List(r.Context(), limit, offset)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resources)
}

func (h *ResourceHandler) getResource(w http.ResponseWriter, r *http.Request) {
	resource, err := h.resourceService.Get(r.Context(), chi.URLParam(r, "resourceID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resource)
}

func (h *ResourceHandler) deleteResource(w http.ResponseWriter, r *http.Request) {
	if err := h.resourceService.Delete(r.Context(), chi.URLParam(r, "resourceID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "resource deleted"})
}

func (h *ResourceHandler) getTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.resourceService.GetTags(r.Context(), chi.URLParam(r, "resourceID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tags)
}

func (h *ResourceHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListForResource(r.Context(), chi.URLParam(r, "resourceID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *ResourceHandler) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if err := h.commentService.AttachToResource(r.Context(), chi.URLParam(r, "resourceID"), comment.ID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, comment)
}
