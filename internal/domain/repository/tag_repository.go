package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	FindByID(ctx context.Context, id string) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
}

type pgTagRepository struct {
	db *sql.DB
}

func NewPgTagRepository(db *sql.DB) TagRepository {
	return &pgTagRepository{db: db}
}

func (r *pgTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	query := `INSERT INTO tags (id, name) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, tag.ID, tag.Name)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("tag with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTagRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTagRepository) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	tag := &model.Tag{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTagRepository.FindByID: %w", err)
	}
	return tag, nil
}

func (r *pgTagRepository) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("pgTagRepository.List: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("pgTagRepository.List: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
