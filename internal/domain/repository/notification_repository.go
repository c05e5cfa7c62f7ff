package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, tx *sql.Tx, n *model.Notification) error
	ListForUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	CreateInvite(ctx context.Context, tx *sql.Tx, invite *model.ChallengeInvite) error
	FindInviteByID(ctx context.Context, id string) (*model.ChallengeInvite, error)
	ListInvitesForUser(ctx context.Context, userID string) ([]model.ChallengeInvite, error)
	UpdateInviteStatus(ctx context.Context, id string, status model.InviteStatus) error
}

type pgNotificationRepository struct {
	db *sql.DB
}

func NewPgNotificationRepository(db *sql.DB) NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Create(ctx context.Context, tx *sql.Tx, n *model.Notification) error {
	query := `INSERT INTO notifications (id, recipient_id, message, link, challenger_username, challenge_id)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, n.ID, n.RecipientID, n.Message, n.Link, n.ChallengerUsername, n.ChallengeID)
	} else {
		_, err = r.db.ExecContext(ctx, query, n.ID, n.RecipientID, n.Message, n.Link, n.ChallengerUsername, n.ChallengeID)
	}
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.Create: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `SELECT id, recipient_id, message, link, read, challenger_username, challenge_id, created_at
	          FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Message, &n.Link, &n.Read, &n.ChallengerUsername, &n.ChallengeID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgNotificationRepository.ListForUser: scan: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.MarkRead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgNotificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgNotificationRepository) CreateInvite(ctx context.Context, tx *sql.Tx, invite *model.ChallengeInvite) error {
	query := `INSERT INTO challenge_invites (id, sender_id, recipient_id, challenge_id, status)
	          VALUES ($1, $2, $3, $4, $5)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, invite.ID, invite.SenderID, invite.RecipientID, invite.ChallengeID, invite.Status)
	} else {
		_, err = r.db.ExecContext(ctx, query, invite.ID, invite.SenderID, invite.RecipientID, invite.ChallengeID, invite.Status)
	}
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.CreateInvite: %w", err)
	}
	return nil
}

func (r *pgNotificationRepository) FindInviteByID(ctx context.Context, id string) (*model.ChallengeInvite, error) {
	query := `SELECT id, sender_id, recipient_id, challenge_id, status, created_at, updated_at
	          FROM challenge_invites WHERE id = $1`
	invite := &model.ChallengeInvite{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invite.ID, &invite.SenderID, &invite.RecipientID, &invite.ChallengeID, &invite.Status,
		&invite.CreatedAt, &invite.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgNotificationRepository.FindInviteByID: %w", err)
	}
	return invite, nil
}

func (r *pgNotificationRepository) ListInvitesForUser(ctx context.Context, userID string) ([]model.ChallengeInvite, error) {
	query := `SELECT id, sender_id, recipient_id, challenge_id, status, created_at, updated_at
	          FROM challenge_invites WHERE recipient_id = $1 OR sender_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgNotificationRepository.ListInvitesForUser: %w", err)
	}
	defer rows.Close()

	var invites []model.ChallengeInvite
	for rows.Next() {
		var invite model.ChallengeInvite
		if err := rows.Scan(&invite.ID, &invite.SenderID, &invite.RecipientID, &invite.ChallengeID, &invite.Status, &invite.CreatedAt, &invite.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgNotificationRepository.ListInvitesForUser: scan: %w", err)
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

func (r *pgNotificationRepository) UpdateInviteStatus(ctx context.Context, id string, status model.InviteStatus) error {
	query := `UPDATE challenge_invites SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("pgNotificationRepository.UpdateInviteStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
