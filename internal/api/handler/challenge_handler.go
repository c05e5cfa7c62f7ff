package handler

import (
	"encoding/json"
	"net/http"

	"codequest/internal/api/middleware"
	"codequest/internal/app/service"
	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type ChallengeHandler struct {
	challengeService *service.ChallengeService
	resourceService  *service.ResourceService
	commentService   *service.CommentService
}

func NewChallengeHandler(cs *service.ChallengeService, rs *service.ResourceService, cms *service.CommentService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: cs, resourceService: rs, commentService: cms}
}

func (h *ChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listChallenges)
	r.Get("/slug/{challengeSlug}", h.getChallengeBySlug)
	r.Get("/{challengeID}", h.getChallenge)
	r.Get("/{challengeID}/tags", h.getTags)
	r.Get("/{challengeID}/comments", h.listComments)
	r.Get("/{challengeID}/resources", h.recommendedResources)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/{challengeID}/comments", h.addComment)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/", h.createChallenge)
		admin.Put("/{challengeID}", h.updateChallenge)
		admin.Delete("/{challengeID}", h.deleteChallenge)
	})
}

func (h *ChallengeHandler) createChallenge(w http.ResponseWriter, r *http.Request) {
	var req service.ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	challenge, err := h.challengeService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, challenge)
}

func (h *ChallengeHandler) listChallenges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("language") != "" || q.Get("difficulty") != "" || q.Get("sort") != "" {
		filter := repository.ChallengeFilter{
			Language:   q.Get("language"),
			Difficulty: model.ChallengeDifficulty(q.Get("difficulty")),
			SortBy:     q.Get("sort"),
		}
		challenges, err := h.challengeService.Filter(r.Context(), filter)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		common.RespondWithJSON(w, http.StatusOK, challenges)
		return
	}

	limit, offset := paginationParams(r)
	challenges, err := h.challengeService.List(r.Context(), limit, offset)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) getChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challengeService.Get(r.Context(), chi.URLParam(r, "challengeID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) getChallengeBySlug(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challengeService.GetBySlug(r.Context(), chi.URLParam(r, "challengeSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) updateChallenge(w http.ResponseWriter, r *http.Request) {
	var req service.ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	challenge, err := h.challengeService.Update(r.Context(), chi.URLParam(r, "challengeID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) deleteChallenge(w http.ResponseWriter, r *http.Request) {
	if err := h.challengeService.Delete(r.Context(), chi.URLParam(r, "challengeID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "challenge deleted"})
}

func (h *ChallengeHandler) getTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.challengeService.GetTags(r.Context(), chi.URLParam(r, "challengeID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tags)
}

func (h *ChallengeHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListForChallenge(r.Context(), chi.URLParam(r, "challengeID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *ChallengeHandler) addComment(w http.ResponseWriter, r *http.Request) {
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
	if err := h.commentService.AttachToChallenge(r.Context(), chi.URLParam(r, "challengeID"), comment.ID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, comment)
}

func (h *ChallengeHandler) recommendedResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resourceService.RecommendedForChallenge(r.Context(), chi.URLParam(r, "challengeID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resources)
}
