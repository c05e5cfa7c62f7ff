package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codequest/internal/api"
	"codequest/internal/app/service"
	"codequest/internal/common/security"
	"codequest/internal/domain/repository"
	"codequest/internal/platform/cache"
	"codequest/internal/platform/config"
	"codequest/internal/platform/database"
	"codequest/internal/platform/judge"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Judge0 client
	judgeClient := judge.NewClient(config.AppConfig.JudgeURL, config.AppConfig.JudgeTimeout)

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	badgeRepo := repository.NewPgBadgeRepository(database.DB)
	challengeRepo := repository.NewPgChallengeRepository(database.DB)
	resourceRepo := repository.NewPgResourceRepository(database.DB)
	tagRepo := repository.NewPgTagRepository(database.DB)
	commentRepo := repository.NewPgCommentRepository(database.DB)
	likeRepo := repository.NewPgLikeRepository(database.DB)
	friendRepo := repository.NewPgFriendRepository(database.DB)
	notificationRepo := repository.NewPgNotificationRepository(database.DB)
	purchaseRepo := repository.NewPgPurchaseRepository(database.DB)
	solveRepo := repository.NewPgSolveRepository(database.DB)

	// 7. Initialize Services
	svc := api.Services{
		Auth:         service.NewAuthService(userRepo),
		User:         service.NewUserService(userRepo, badgeRepo),
		Badge:        service.NewBadgeService(badgeRepo, userRepo, database.DB),
		Challenge:    service.NewChallengeService(challengeRepo, tagRepo, database.DB),
		Resource:     service.NewResourceService(resourceRepo, challengeRepo, database.DB),
		Tag:          service.NewTagService(tagRepo),
		Comment:      service.NewCommentService(commentRepo, likeRepo, userRepo, challengeRepo, resourceRepo, database.DB),
		Like:         service.NewLikeService(likeRepo, challengeRepo, resourceRepo, commentRepo, database.DB),
		Friend:       service.NewFriendService(friendRepo, userRepo),
		Notification: service.NewNotificationService(notificationRepo, userRepo, challengeRepo, database.DB),
		Reward:       service.NewRewardService(userRepo, resourceRepo, purchaseRepo, database.DB),
		Submission:   service.NewSubmissionService(challengeRepo, solveRepo, userRepo, badgeRepo, judgeClient, database.DB),
		Leaderboard: service.NewLeaderboardService(
			userRepo, cache.RDB,
			config.AppConfig.LeaderboardCacheKey,
			config.AppConfig.LeaderboardCacheTTL,
		),
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(svc)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // Submissions block on the judge
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
