package service

import (
	"context"
	"database/sql"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	challengeRepo    repository.ChallengeRepository
	db               *sql.DB
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	challengeRepo repository.ChallengeRepository,
	db *sql.DB,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		challengeRepo:    challengeRepo,
		db:               db,
	}
}

type NotifyRequest struct {
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
	Link        string `json:"link,omitempty"`
}

func (s *NotificationService) Notify(ctx context.Context, req NotifyRequest) (*model.Notification, error) {
	if req.RecipientID == "" || req.Message == "" {
		return nil, common.Errorf("recipient and message are required: %w", common.ErrBadRequest)
	}
	if _, err := s.userRepo.FindByID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	n := &model.Notification{
		ID:          uuid.NewString(),
		RecipientID: req.RecipientID,
		Message:     req.Message,
		Link:        req.Link,
	}
	if err := s.notificationRepo.Create(ctx, nil, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.notificationRepo.Delete(ctx, id)
}

type InviteRequest struct {
	RecipientUsername string `json:"recipient_username"`
	ChallengeID       string `json:"challenge_id"`
}

// Invite challenges another user to solve a challenge. The invite and the
// recipient's notification are written in one transaction.
func (s *NotificationService) Invite(ctx context.Context, senderID string, req InviteRequest) (*model.ChallengeInvite, error) {
	if req.RecipientUsername == "" || req.ChallengeID == "" {
		return nil, common.Errorf("recipient username and challenge id are required: %w", common.ErrBadRequest)
	}

	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.userRepo.FindByUsername(ctx, req.RecipientUsername)
	if err != nil {
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, common.Errorf("cannot challenge yourself: %w", common.ErrBadRequest)
	}
	challenge, err := s.challengeRepo.FindByID(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}

	invite := &model.ChallengeInvite{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipient.ID,
		ChallengeID: challenge.ID,
		Status:      model.InviteStatusPending,
	}
	notification := &model.Notification{
		ID:                 uuid.NewString(),
		RecipientID:        recipient.ID,
		Message:            fmt.Sprintf("%s challenged you to solve %q", sender.Username, challenge.Title),
		Link:               "/challenges/" + challenge.Slug,
		ChallengerUsername: sender.Username,
		ChallengeID:        &challenge.ID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.notificationRepo.CreateInvite(ctx, tx, invite); err != nil {
		return nil, err
	}
	if err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit invite: %w", err)
	}
	return invite, nil
}

func (s *NotificationService) ListInvites(ctx context.Context, userID string) ([]model.ChallengeInvite, error) {
	return s.notificationRepo.ListInvitesForUser(ctx, userID)
}

// RespondToInvite lets the recipient accept or decline a pending invite.
func (s *NotificationService) RespondToInvite(ctx context.Context, userID, inviteID string, accept bool) (*model.ChallengeInvite, error) {
	invite, err := s.notificationRepo.FindInviteByID(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.RecipientID != userID {
		return nil, common.Errorf("invite belongs to another user: %w", common.ErrForbidden)
	}
	if invite.Status != model.InviteStatusPending {
		return nil, common.Errorf("invite already %s: %w", invite.Status, common.ErrConflict)
	}

	status := model.InviteStatusDeclined
	if accept {
		status = model.InviteStatusAccepted
	}
	if err := s.notificationRepo.UpdateInviteStatus(ctx, inviteID, status); err != nil {
		return nil, err
	}
	invite.Status = status
	return invite, nil
}
