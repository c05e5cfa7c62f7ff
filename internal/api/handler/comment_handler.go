package handler

import (
	"encoding/json"
	"net/http"

	"codequest/internal/api/middleware"
	"codequest/internal/app/service"
	"codequest/internal/common"
	"codequest/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(cs *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listComments)
	r.Get("/{commentID}", h.getComment)
	r.Get("/user/{userID}", h.listForUser)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Put("/{commentID}", h.updateComment)
		authed.Delete("/{commentID}", h.deleteComment)
	})
}

func (h *CommentHandler) listComments(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	comments, err := h.commentService.List(r.Context(), limit, offset)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) getComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.commentService.Get(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) listForUser(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

// requireOwnerOrAdmin loads the comment and checks the caller may modify it.
func (h *CommentHandler) requireOwnerOrAdmin(w http.ResponseWriter, r *http.Request, commentID string) bool {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return false
	}
	comment, err := h.commentService.Get(r.Context(), commentID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return false
	}
	role, _ := middleware.GetUserRoleFromContext(r.Context())
	if comment.UserID != userID && role != model.RoleAdmin {
		common.RespondWithError(w, http.StatusForbidden, "Not the comment author")
		return false
	}
	return true
}

func (h *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	if !h.requireOwnerOrAdmin(w, r, commentID) {
		return
	}

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	if !h.requireOwnerOrAdmin(w, r, commentID) {
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
