package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type ResourceRepository interface {
	Create(ctx context.Context, tx *sql.Tx, resource *model.Resource) error
	FindByID(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context, limit, offset int) ([]model.Resource, error)
	Filter(ctx context.Context, sortBy string) ([]model.Resource, error)
	Delete(ctx context.Context, id string) error

	SetTags(ctx context.Context, tx *sql.Tx, resourceID string, tagIDs []string) error
	GetTags(ctx context.Context, resourceID string) ([]model.Tag, error)

	// ListFree returns every zero-cost resource.
	ListFree(ctx context.Context) ([]model.Resource, error)

	// RecommendedForChallenge returns resources sharing at least one tag with
	// the challenge.
	RecommendedForChallenge(ctx context.Context, challengeID string) ([]model.Resource, error)
}

type pgResourceRepository struct {
	db *sql.DB
}

func NewPgResourceRepository(db *sql.DB) ResourceRepository {
	return &pgResourceRepository{db: db}
}

const resourceColumns = `id, title, slug, description, reward_points, created_at`

func scanResource(row interface{ Scan(...interface{}) error }, res *model.Resource) error {
	return row.Scan(&res.ID, &res.Title, &res.Slug, &res.Description, &res.RewardPoints, &res.CreatedAt)
}

func (r *pgResourceRepository) Create(ctx context.Context, tx *sql.Tx, res *model.Resource) error {
	query := `INSERT INTO resources (id, title, slug, description, reward_points)
	          VALUES ($1, $2, $3, $4, $5)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, res.ID, res.Title, res.Slug, res.Description, res.RewardPoints)
	} else {
		_, err = r.db.ExecContext(ctx, query, res.ID, res.Title, res.Slug, res.Description, res.RewardPoints)
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("resource with this title already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgResourceRepository.Create: %w", err)
	}
	return nil
}

func (r *pgResourceRepository) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	resource := &model.Resource{}
	err := scanResource(r.db.QueryRowContext(ctx, query, id), resource)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgResourceRepository.FindByID: %w", err)
	}
	return resource, nil
}

func (r *pgResourceRepository) List(ctx context.Context, limit, offset int) ([]model.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryResources(ctx, query, limit, offset)
}

func (r *pgResourceRepository) Filter(ctx context.Context, sortBy string) ([]model.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	switch sortBy {
	case "oldest":
		query += ` ORDER BY created_at ASC`
	default: // "latest"
		query += ` ORDER BY created_at DESC`
	}
	return r.queryResources(ctx, query)
}

func (r *pgResourceRepository) ListFree(ctx context.Context) ([]model.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE reward_points = 0`
	return r.queryResources(ctx, query)
}

func (r *pgResourceRepository) RecommendedForChallenge(ctx context.Context, challengeID string) ([]model.Resource, error) {
	query := `SELECT DISTINCT r.id, r.title, r.slug, r.description, r.reward_points, r.created_at
	          FROM resources r
	          JOIN resource_tags rt ON r.id = rt.resource_id
	          JOIN challenge_tags ct ON rt.tag_id = ct.tag_id
	          WHERE ct.challenge_id = $1`
	return r.queryResources(ctx, query, challengeID)
}

func (r *pgResourceRepository) queryResources(ctx context.Context, query string, args ...interface{}) ([]model.Resource, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgResourceRepository.queryResources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		var resource model.Resource
		if err := scanResource(rows, &resource); err != nil {
			return nil, fmt.Errorf("pgResourceRepository.queryResources: scan: %w", err)
		}
		resources = append(resources, resource)
	}
	return resources, rows.Err()
}

func (r *pgResourceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgResourceRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgResourceRepository) SetTags(ctx context.Context, tx *sql.Tx, resourceID string, tagIDs []string) error {
	del := `DELETE FROM resource_tags WHERE resource_id = $1`
	ins := `INSERT INTO resource_tags (resource_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, del, resourceID)
	} else {
		_, err = r.db.ExecContext(ctx, del, resourceID)
	}
	if err != nil {
		return fmt.Errorf("pgResourceRepository.SetTags: clear: %w", err)
	}
	for _, tagID := range tagIDs {
		if tx != nil {
			_, err = tx.ExecContext(ctx, ins, resourceID, tagID)
		} else {
			_, err = r.db.ExecContext(ctx, ins, resourceID, tagID)
		}
		if err != nil {
			return fmt.Errorf("pgResourceRepository.SetTags: insert tag %s: %w", tagID, err)
		}
	}
	return nil
}

func (r *pgResourceRepository) GetTags(ctx context.Context, resourceID string) ([]model.Tag, error) {
	query := `SELECT t.id, t.name
	          FROM tags t
	          JOIN resource_tags rt ON t.id = rt.tag_id
	          WHERE rt.resource_id = $1
	          ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("pgResourceRepository.GetTags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("pgResourceRepository.GetTags: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
