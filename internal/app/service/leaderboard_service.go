package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type LeaderboardService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client
	cacheKey string
	cacheTTL time.Duration
}

func NewLeaderboardService(userRepo repository.UserRepository, rdb *redis.Client, cacheKey string, cacheTTL time.Duration) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		rdb:      rdb,
		cacheKey: cacheKey,
		cacheTTL: cacheTTL,
	}
}

// Top returns the highest scoring users. Results are served from Redis for
// the configured TTL; a cache miss or Redis failure falls through to the
// database.
func (s *LeaderboardService) Top(ctx context.Context, limit, offset int) ([]model.LeaderboardEntry, error) {
	if cached := s.fromCache(ctx, limit, offset); cached != nil {
		return cached, nil
	}

	users, err := s.userRepo.ListByScore(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, model.LeaderboardEntry{
			Rank:     offset + i + 1,
			UserID:   u.ID,
			Username: u.Username,
			Score:    u.Score,
		})
	}

	s.toCache(ctx, limit, offset, entries)
	return entries, nil
}

// Invalidate drops the cached leaderboard pages. Called after a score change.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, s.cacheKey+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("leaderboard cache invalidation: %v", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("leaderboard cache scan: %v", err)
	}
}

func (s *LeaderboardService) pageKey(limit, offset int) string {
	return fmt.Sprintf("%s:%d:%d", s.cacheKey, limit, offset)
}

func (s *LeaderboardService) fromCache(ctx context.Context, limit, offset int) []model.LeaderboardEntry {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, s.pageKey(limit, offset)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("leaderboard cache read: %v", err)
		}
		return nil
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("leaderboard cache decode: %v", err)
		return nil
	}
	return entries
}

func (s *LeaderboardService) toCache(ctx context.Context, limit, offset int, entries []model.LeaderboardEntry) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, s.pageKey(limit, offset), raw, s.cacheTTL).Err(); err != nil {
		log.Printf("leaderboard cache write: %v", err)
	}
}
