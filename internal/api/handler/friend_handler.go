package handler

import (
	"encoding/json"
	"net/http"

	"codequest/internal/api/middleware"
	"codequest/internal/app/service"
	"codequest/internal/common"

	"github.com/go-chi/chi/v5"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(fs *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: fs}
}

func (h *FriendHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.listFriends)
	r.Post("/", h.addFriend)
	r.Delete("/{friendUsername}", h.removeFriend)
}

type friendRequest struct {
	Username string `json:"username"`
}

func (h *FriendHandler) addFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req friendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	friendship, err := h.friendService.AddFriend(r.Context(), userID, req.Username)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, friendship)
}

func (h *FriendHandler) removeFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.friendService.RemoveFriend(r.Context(), userID, chi.URLParam(r, "friendUsername")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "friend removed"})
}

func (h *FriendHandler) listFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, friends)
}
