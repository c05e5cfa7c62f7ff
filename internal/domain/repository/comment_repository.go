package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	List(ctx context.Context, limit, offset int) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error

	// Delete removes the comment row; callers remove its likes first in the
	// same transaction, join rows cascade at the schema level.
	Delete(ctx context.Context, tx *sql.Tx, id string) error

	AttachToChallenge(ctx context.Context, challengeID, commentID string) error
	AttachToResource(ctx context.Context, resourceID, commentID string) error
	ListForChallenge(ctx context.Context, challengeID string) ([]model.Comment, error)
	ListForResource(ctx context.Context, resourceID string) ([]model.Comment, error)
	ListForUser(ctx context.Context, userID string) ([]model.Comment, error)
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (id, user_id, comment) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.Comment)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	query := `SELECT id, user_id, comment, created_at FROM comments WHERE id = $1`
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&comment.ID, &comment.UserID, &comment.Comment, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCommentRepository.FindByID: %w", err)
	}
	return comment, nil
}

func (r *pgCommentRepository) List(ctx context.Context, limit, offset int) ([]model.Comment, error) {
	query := `SELECT id, user_id, comment, created_at FROM comments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryComments(ctx, query, limit, offset)
}

func (r *pgCommentRepository) Update(ctx context.Context, c *model.Comment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET comment = $1 WHERE id = $2`, c.Comment, c.ID)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM comments WHERE id = $1`
	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, id)
	} else {
		res, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCommentRepository) AttachToChallenge(ctx context.Context, challengeID, commentID string) error {
	query := `INSERT INTO challenge_comments (challenge_id, comment_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, challengeID, commentID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("comment already attached to challenge: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCommentRepository.AttachToChallenge: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) AttachToResource(ctx context.Context, resourceID, commentID string) error {
	query := `INSERT INTO resource_comments (resource_id, comment_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, resourceID, commentID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("comment already attached to resource: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCommentRepository.AttachToResource: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) ListForChallenge(ctx context.Context, challengeID string) ([]model.Comment, error) {
	query := `SELECT c.id, c.user_id, c.comment, c.created_at
	          FROM comments c
	          JOIN challenge_comments cc ON cc.comment_id = c.id
	          WHERE cc.challenge_id = $1
	          ORDER BY c.created_at`
	return r.queryComments(ctx, query, challengeID)
}

func (r *pgCommentRepository) ListForResource(ctx context.Context, resourceID string) ([]model.Comment, error) {
	query := `SELECT c.id, c.user_id, c.comment, c.created_at
	          FROM comments c
	          JOIN resource_comments rc ON rc.comment_id = c.id
	          WHERE rc.resource_id = $1
	          ORDER BY c.created_at`
	return r.queryComments(ctx, query, resourceID)
}

func (r *pgCommentRepository) ListForUser(ctx context.Context, userID string) ([]model.Comment, error) {
	query := `SELECT id, user_id, comment, created_at FROM comments WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryComments(ctx, query, userID)
}

func (r *pgCommentRepository) queryComments(ctx context.Context, query string, args ...interface{}) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.queryComments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(&comment.ID, &comment.UserID, &comment.Comment, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.queryComments: scan: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
