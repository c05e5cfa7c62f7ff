package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *model.Badge) error
	FindByID(ctx context.Context, id string) (*model.Badge, error)
	FindByTitle(ctx context.Context, title string) (*model.Badge, error)
	List(ctx context.Context, limit, offset int) ([]model.Badge, error)
	Update(ctx context.Context, badge *model.Badge) error
	Delete(ctx context.Context, id string) error

	// GrantToUser inserts the user-badge link; a duplicate grant is a no-op.
	GrantToUser(ctx context.Context, tx *sql.Tx, userID, badgeID string) error
	ListForUser(ctx context.Context, userID string) ([]model.Badge, error)
}

type pgBadgeRepository struct {
	db *sql.DB
}

func NewPgBadgeRepository(db *sql.DB) BadgeRepository {
	return &pgBadgeRepository{db: db}
}

func (r *pgBadgeRepository) Create(ctx context.Context, badge *model.Badge) error {
	query := `INSERT INTO badges (id, title, description) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, badge.ID, badge.Title, badge.Description)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("badge with this title already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgBadgeRepository.Create: %w", err)
	}
	return nil
}

func (r *pgBadgeRepository) FindByID(ctx context.Context, id string) (*model.Badge, error) {
	query := `SELECT id, title, description, created_at FROM badges WHERE id = $1`
	badge := &model.Badge{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&badge.ID, &badge.Title, &badge.Description, &badge.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBadgeRepository.FindByID: %w", err)
	}
	return badge, nil
}

func (r *pgBadgeRepository) FindByTitle(ctx context.Context, title string) (*model.Badge, error) {
	query := `SELECT id, title, description, created_at FROM badges WHERE title = $1`
	badge := &model.Badge{}
	err := r.db.QueryRowContext(ctx, query, title).Scan(&badge.ID, &badge.Title, &badge.Description, &badge.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBadgeRepository.FindByTitle: %w", err)
	}
	return badge, nil
}

func (r *pgBadgeRepository) List(ctx context.Context, limit, offset int) ([]model.Badge, error) {
	query := `SELECT id, title, description, created_at FROM badges ORDER BY title LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgBadgeRepository.List: %w", err)
	}
	defer rows.Close()

	var badges []model.Badge
	for rows.Next() {
		var badge model.Badge
		if err := rows.Scan(&badge.ID, &badge.Title, &badge.Description, &badge.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgBadgeRepository.List: scan: %w", err)
		}
		badges = append(badges, badge)
	}
	return badges, rows.Err()
}

func (r *pgBadgeRepository) Update(ctx context.Context, badge *model.Badge) error {
	query := `UPDATE badges SET title = $1, description = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, badge.Title, badge.Description, badge.ID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("badge with this title already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgBadgeRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBadgeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM badges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgBadgeRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBadgeRepository) GrantToUser(ctx context.Context, tx *sql.Tx, userID, badgeID string) error {
	query := `INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, userID, badgeID)
	} else {
		_, err = r.db.ExecContext(ctx, query, userID, badgeID)
	}
	if err != nil {
		return fmt.Errorf("pgBadgeRepository.GrantToUser: %w", err)
	}
	return nil
}

func (r *pgBadgeRepository) ListForUser(ctx context.Context, userID string) ([]model.Badge, error) {
	query := `SELECT b.id, b.title, b.description, b.created_at
	          FROM badges b
	          JOIN user_badges ub ON b.id = ub.badge_id
	          WHERE ub.user_id = $1
	          ORDER BY b.title`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgBadgeRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var badges []model.Badge
	for rows.Next() {
		var badge model.Badge
		if err := rows.Scan(&badge.ID, &badge.Title, &badge.Description, &badge.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgBadgeRepository.ListForUser: scan: %w", err)
		}
		badges = append(badges, badge)
	}
	return badges, rows.Err()
}
