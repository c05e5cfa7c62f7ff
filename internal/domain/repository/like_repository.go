package repository

import (
	"context"
	"database/sql"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type LikeRepository interface {
	// Delete removes the like if present; reports whether a row was removed.
	Delete(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error)

	// Insert adds the like; a concurrent duplicate insert is absorbed by
	// ON CONFLICT DO NOTHING and reported as false.
	Insert(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error)

	ListForTarget(ctx context.Context, target model.LikeTarget, targetID string) ([]model.Like, error)
	CountsByTarget(ctx context.Context, target model.LikeTarget) ([]model.LikeCount, error)
	ListForUser(ctx context.Context, userID string) (map[model.LikeTarget][]model.Like, error)

	DeleteForComment(ctx context.Context, tx *sql.Tx, commentID string) error
}

type pgLikeRepository struct {
	db *sql.DB
}

func NewPgLikeRepository(db *sql.DB) LikeRepository {
	return &pgLikeRepository{db: db}
}

// likeTables maps a like target to its join table, target column, and the
// base entity table used for aggregate counts.
var likeTables = map[model.LikeTarget]struct {
	table     string
	column    string
	baseTable string
}{
	model.LikeTargetChallenge: {"challenge_likes", "challenge_id", "challenges"},
	model.LikeTargetResource:  {"resource_likes", "resource_id", "resources"},
	model.LikeTargetComment:   {"comment_likes", "comment_id", "comments"},
}

func likeTable(target model.LikeTarget) (string, string, string, error) {
	entry, ok := likeTables[target]
	if !ok {
		return "", "", "", fmt.Errorf("unknown like target %q: %w", target, common.ErrBadRequest)
	}
	return entry.table, entry.column, entry.baseTable, nil
}

func (r *pgLikeRepository) Delete(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error) {
	table, column, _, err := likeTable(like.Target)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, table, column)

	var res sql.Result
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, like.UserID, like.TargetID)
	} else {
		res, err = r.db.ExecContext(ctx, query, like.UserID, like.TargetID)
	}
	if err != nil {
		return false, fmt.Errorf("pgLikeRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgLikeRepository.Delete: rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *pgLikeRepository) Insert(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error) {
	table, column, _, err := likeTable(like.Target)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, table, column)

	var res sql.Result
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, like.UserID, like.TargetID)
	} else {
		res, err = r.db.ExecContext(ctx, query, like.UserID, like.TargetID)
	}
	if err != nil {
		return false, fmt.Errorf("pgLikeRepository.Insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgLikeRepository.Insert: rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *pgLikeRepository) ListForTarget(ctx context.Context, target model.LikeTarget, targetID string) ([]model.Like, error) {
	table, column, _, err := likeTable(target)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT user_id, %s FROM %s WHERE %s = $1`, column, table, column)
	rows, err := r.db.QueryContext(ctx, query, targetID)
	if err != nil {
		return nil, fmt.Errorf("pgLikeRepository.ListForTarget: %w", err)
	}
	defer rows.Close()

	var likes []model.Like
	for rows.Next() {
		like := model.Like{Target: target}
		if err := rows.Scan(&like.UserID, &like.TargetID); err != nil {
			return nil, fmt.Errorf("pgLikeRepository.ListForTarget: scan: %w", err)
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}

func (r *pgLikeRepository) CountsByTarget(ctx context.Context, target model.LikeTarget) ([]model.LikeCount, error) {
	table, column, baseTable, err := likeTable(target)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		`SELECT b.id, COUNT(l.user_id)
		 FROM %s b
		 LEFT JOIN %s l ON b.id = l.%s
		 GROUP BY b.id`, baseTable, table, column)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgLikeRepository.CountsByTarget: %w", err)
	}
	defer rows.Close()

	var counts []model.LikeCount
	for rows.Next() {
		var count model.LikeCount
		if err := rows.Scan(&count.TargetID, &count.Likes); err != nil {
			return nil, fmt.Errorf("pgLikeRepository.CountsByTarget: scan: %w", err)
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}

func (r *pgLikeRepository) ListForUser(ctx context.Context, userID string) (map[model.LikeTarget][]model.Like, error) {
	result := make(map[model.LikeTarget][]model.Like)
	for _, target := range []model.LikeTarget{model.LikeTargetChallenge, model.LikeTargetResource} {
		table, column, _, err := likeTable(target)
		if err != nil {
			return nil, err
		}
		query := fmt.Sprintf(`SELECT user_id, %s FROM %s WHERE user_id = $1`, column, table)
		rows, err := r.db.QueryContext(ctx, query, userID)
		if err != nil {
			return nil, fmt.Errorf("pgLikeRepository.ListForUser: %w", err)
		}
		for rows.Next() {
			like := model.Like{Target: target}
			if err := rows.Scan(&like.UserID, &like.TargetID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("pgLikeRepository.ListForUser: scan: %w", err)
			}
			result[target] = append(result[target], like)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("pgLikeRepository.ListForUser: %w", err)
		}
		rows.Close()
	}
	return result, nil
}

func (r *pgLikeRepository) DeleteForComment(ctx context.Context, tx *sql.Tx, commentID string) error {
	query := `DELETE FROM comment_likes WHERE comment_id = $1`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, commentID)
	} else {
		_, err = r.db.ExecContext(ctx, query, commentID)
	}
	if err != nil {
		return fmt.Errorf("pgLikeRepository.DeleteForComment: %w", err)
	}
	return nil
}
