package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"
	"codequest/internal/platform/judge"
)

type SubmissionService struct {
	challengeRepo repository.ChallengeRepository
	solveRepo     repository.SolveRepository
	userRepo      repository.UserRepository
	badgeRepo     repository.BadgeRepository
	judgeClient   *judge.Client
	db            *sql.DB // For transactions
}

func NewSubmissionService(
	challengeRepo repository.ChallengeRepository,
	solveRepo repository.SolveRepository,
	userRepo repository.UserRepository,
	badgeRepo repository.BadgeRepository,
	judgeClient *judge.Client,
	db *sql.DB,
) *SubmissionService {
	return &SubmissionService{
		challengeRepo: challengeRepo,
		solveRepo:     solveRepo,
		userRepo:      userRepo,
		badgeRepo:     badgeRepo,
		judgeClient:   judgeClient,
		db:            db,
	}
}

type SubmitCodeRequest struct {
	ChallengeID string `json:"challenge_id"`
	SourceCode  string `json:"source_code"`
}

// Submit runs one solve attempt: eligibility checks, a blocking judge round
// trip, and on acceptance the score, reward, badge, and solve-record side
// effects applied in a single transaction. The solve insert goes first
// inside that transaction so the (user, challenge) primary key closes the
// duplicate-solve race; a constraint hit aborts before any points move.
func (s *SubmissionService) Submit(ctx context.Context, userID string, req SubmitCodeRequest) (*model.SubmissionResult, error) {
	if req.ChallengeID == "" || req.SourceCode == "" {
		return nil, common.Errorf("challenge id and source code are required: %w", common.ErrBadRequest)
	}

	challenge, err := s.challengeRepo.FindByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("challenge not found: %w", common.ErrNotFound)
		}
		return nil, common.Errorf("failed to load challenge: %w", err)
	}

	// Advisory pre-check so an already-solved pair never reaches the judge.
	// The transactional insert below is the authoritative guard.
	solved, err := s.solveRepo.Exists(ctx, userID, challenge.ID)
	if err != nil {
		return nil, common.Errorf("failed to check solve history: %w", err)
	}
	if solved {
		return nil, common.Errorf("challenge already solved: %w", common.ErrConflict)
	}

	verdict, err := s.judgeClient.Evaluate(ctx, req.SourceCode, challenge.Input, challenge.ExpectedOutput, judge.LanguageID(challenge.Language))
	if err != nil {
		return nil, err
	}

	result := &model.SubmissionResult{
		Status: model.SubmissionStatus{
			ID:          verdict.Status.ID,
			Description: verdict.Status.Description,
		},
		Accepted:       verdict.Status.ID == judge.StatusAccepted,
		Stdout:         verdict.Stdout,
		Stderr:         verdict.Stderr,
		ExpectedOutput: challenge.ExpectedOutput,
		ActualOutput:   verdict.Stdout,
		Time:           verdict.Time,
		Memory:         verdict.Memory,
		Token:          verdict.Token,
		CompileOutput:  verdict.CompileOutput,
		Message:        verdict.Message,
	}

	if !result.Accepted {
		// A rejection is a normal outcome: the diagnostics go back to the
		// caller and no user state changes.
		log.Printf("Submission rejected for user %s challenge %s: %s", userID, challenge.ID, verdict.Status.Description)
		return result, nil
	}

	points := challenge.Difficulty.Points()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	record := &model.SolveRecord{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Solution:    req.SourceCode,
	}
	if err := s.solveRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	priorScore, err := s.userRepo.CreditSolve(ctx, tx, userID, points)
	if err != nil {
		return nil, common.Errorf("failed to credit user: %w", err)
	}
	result.PointsAwarded = points

	if priorScore == 0 {
		badgeTitle, err := s.grantFirstSolveBadge(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		result.BadgeAwarded = badgeTitle
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit submission result: %w", err)
	}

	log.Printf("User %s solved challenge %s (+%d points, badge %q)", userID, challenge.ID, points, result.BadgeAwarded)
	return result, nil
}

// grantFirstSolveBadge awards the beginner badge on a first accepted solve.
// A missing badge row is a soft no-op: the submission must not fail because
// the badge catalog is incomplete.
func (s *SubmissionService) grantFirstSolveBadge(ctx context.Context, tx *sql.Tx, userID string) (string, error) {
	badge, err := s.badgeRepo.FindByTitle(ctx, model.BeginnerBadgeTitle)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("Badge %q not provisioned, skipping award for user %s", model.BeginnerBadgeTitle, userID)
			return "", nil
		}
		return "", common.Errorf("failed to look up badge: %w", err)
	}
	if err := s.badgeRepo.GrantToUser(ctx, tx, userID, badge.ID); err != nil {
		return "", common.Errorf("failed to grant badge: %w", err)
	}
	return badge.Title, nil
}

// GetSolveHistory lists the challenges a user has been credited for.
func (s *SubmissionService) GetSolveHistory(ctx context.Context, userID string) ([]model.SolveRecord, error) {
	return s.solveRepo.ListForUser(ctx, userID)
}
