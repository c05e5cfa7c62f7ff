package api

import (
	"net/http"
	"time"

	"codequest/internal/api/handler"
	"codequest/internal/app/service"
	"codequest/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Badge        *service.BadgeService
	Challenge    *service.ChallengeService
	Resource     *service.ResourceService
	Tag          *service.TagService
	Comment      *service.CommentService
	Like         *service.LikeService
	Friend       *service.FriendService
	Notification *service.NotificationService
	Reward       *service.RewardService
	Submission   *service.SubmissionService
	Leaderboard  *service.LeaderboardService
}

func NewRouter(svc Services) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present and puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		v1.Route("/users", handler.NewUserHandler(svc.User).RegisterRoutes)
		v1.Route("/badges", handler.NewBadgeHandler(svc.Badge).RegisterRoutes)
		v1.Route("/challenges", handler.NewChallengeHandler(svc.Challenge, svc.Resource, svc.Comment).RegisterRoutes)
		v1.Route("/resources", handler.NewResourceHandler(svc.Resource, svc.Comment).RegisterRoutes)
		v1.Route("/tags", handler.NewTagHandler(svc.Tag).RegisterRoutes)
		v1.Route("/comments", handler.NewCommentHandler(svc.Comment).RegisterRoutes)
		v1.Route("/likes", handler.NewLikeHandler(svc.Like).RegisterRoutes)
		v1.Route("/friends", handler.NewFriendHandler(svc.Friend).RegisterRoutes)
		v1.Route("/notifications", handler.NewNotificationHandler(svc.Notification).RegisterRoutes)
		v1.Route("/rewards", handler.NewRewardHandler(svc.Reward).RegisterRoutes)
		v1.Route("/submissions", handler.NewSubmissionHandler(svc.Submission, svc.Leaderboard).RegisterRoutes)
		v1.Route("/leaderboard", handler.NewLeaderboardHandler(svc.Leaderboard).RegisterRoutes)
	})

	return r
}
