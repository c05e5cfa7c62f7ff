package repository

import (
	"context"
	"database/sql"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type FriendRepository interface {
	// Create inserts the friendship; the normalized composite key turns a
	// duplicate in either order into ErrConflict.
	Create(ctx context.Context, userA, userB string) error

	// Delete removes the friendship; reports whether a pair existed.
	Delete(ctx context.Context, userA, userB string) (bool, error)

	ListFriends(ctx context.Context, userID string) ([]model.User, error)
}

type pgFriendRepository struct {
	db *sql.DB
}

func NewPgFriendRepository(db *sql.DB) FriendRepository {
	return &pgFriendRepository{db: db}
}

// normalizePair orders the pair so (a,b) and (b,a) hit the same row.
func normalizePair(userA, userB string) (string, string) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

func (r *pgFriendRepository) Create(ctx context.Context, userA, userB string) error {
	first, second := normalizePair(userA, userB)
	query := `INSERT INTO friends (user_id1, user_id2) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, first, second)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("already friends: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgFriendRepository.Create: %w", err)
	}
	return nil
}

func (r *pgFriendRepository) Delete(ctx context.Context, userA, userB string) (bool, error) {
	first, second := normalizePair(userA, userB)
	res, err := r.db.ExecContext(ctx, `DELETE FROM friends WHERE user_id1 = $1 AND user_id2 = $2`, first, second)
	if err != nil {
		return false, fmt.Errorf("pgFriendRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgFriendRepository.Delete: rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *pgFriendRepository) ListFriends(ctx context.Context, userID string) ([]model.User, error) {
	query := `SELECT u.id, u.username, u.email, u.hashed_password, u.role, u.score, u.reward_points, u.reward_timer, u.created_at, u.updated_at
	          FROM users u
	          JOIN friends f ON (f.user_id1 = u.id OR f.user_id2 = u.id)
	          WHERE (f.user_id1 = $1 OR f.user_id2 = $1) AND u.id <> $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgFriendRepository.ListFriends: %w", err)
	}
	defer rows.Close()

	var friends []model.User
	for rows.Next() {
		var user model.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("pgFriendRepository.ListFriends: scan: %w", err)
		}
		friends = append(friends, user)
	}
	return friends, rows.Err()
}
