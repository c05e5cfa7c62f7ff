package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

// ChallengeFilter narrows and orders challenge listings.
type ChallengeFilter struct {
	Language   string
	Difficulty model.ChallengeDifficulty
	SortBy     string // "latest" or "oldest"
}

type ChallengeRepository interface {
	Create(ctx context.Context, tx *sql.Tx, challenge *model.Challenge) error
	FindByID(ctx context.Context, id string) (*model.Challenge, error)
	FindBySlug(ctx context.Context, slug string) (*model.Challenge, error)
	List(ctx context.Context, limit, offset int) ([]model.Challenge, error)
	Filter(ctx context.Context, filter ChallengeFilter) ([]model.Challenge, error)
	Update(ctx context.Context, tx *sql.Tx, challenge *model.Challenge) error
	Delete(ctx context.Context, id string) error

	SetTags(ctx context.Context, tx *sql.Tx, challengeID string, tagIDs []string) error
	GetTags(ctx context.Context, challengeID string) ([]model.Tag, error)
}

type pgChallengeRepository struct {
	db *sql.DB
}

func NewPgChallengeRepository(db *sql.DB) ChallengeRepository {
	return &pgChallengeRepository{db: db}
}

const challengeColumns = `id, title, slug, description, input, expected_output, difficulty, language, created_at, updated_at`

func scanChallenge(row interface{ Scan(...interface{}) error }, c *model.Challenge) error {
	return row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.Input, &c.ExpectedOutput,
		&c.Difficulty, &c.Language, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *pgChallengeRepository) Create(ctx context.Context, tx *sql.Tx, c *model.Challenge) error {
	query := `INSERT INTO challenges (id, title, slug, description, input, expected_output, difficulty, language)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, c.ID, c.Title, c.Slug, c.Description, c.Input, c.ExpectedOutput, c.Difficulty, c.Language)
	} else {
		_, err = r.db.ExecContext(ctx, query, c.ID, c.Title, c.Slug, c.Description, c.Input, c.ExpectedOutput, c.Difficulty, c.Language)
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("challenge with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgChallengeRepository.Create: %w", err)
	}
	return nil
}

func (r *pgChallengeRepository) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1`
	challenge := &model.Challenge{}
	err := scanChallenge(r.db.QueryRowContext(ctx, query, id), challenge)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgChallengeRepository.FindByID: %w", err)
	}
	return challenge, nil
}

func (r *pgChallengeRepository) FindBySlug(ctx context.Context, slug string) (*model.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE slug = $1`
	challenge := &model.Challenge{}
	err := scanChallenge(r.db.QueryRowContext(ctx, query, slug), challenge)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgChallengeRepository.FindBySlug: %w", err)
	}
	return challenge, nil
}

func (r *pgChallengeRepository) List(ctx context.Context, limit, offset int) ([]model.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryChallenges(ctx, query, limit, offset)
}

func (r *pgChallengeRepository) Filter(ctx context.Context, filter ChallengeFilter) ([]model.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE 1=1`
	args := []interface{}{}

	if filter.Language != "" {
		args = append(args, filter.Language)
		query += fmt.Sprintf(" AND language = $%d", len(args))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		query += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}

	switch filter.SortBy {
	case "oldest":
		query += " ORDER BY created_at ASC"
	default: // "latest"
		query += " ORDER BY created_at DESC"
	}

	return r.queryChallenges(ctx, query, args...)
}

func (r *pgChallengeRepository) queryChallenges(ctx context.Context, query string, args ...interface{}) ([]model.Challenge, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.queryChallenges: %w", err)
	}
	defer rows.Close()

	var challenges []model.Challenge
	for rows.Next() {
		var challenge model.Challenge
		if err := scanChallenge(rows, &challenge); err != nil {
			return nil, fmt.Errorf("pgChallengeRepository.queryChallenges: scan: %w", err)
		}
		challenges = append(challenges, challenge)
	}
	return challenges, rows.Err()
}

func (r *pgChallengeRepository) Update(ctx context.Context, tx *sql.Tx, c *model.Challenge) error {
	query := `UPDATE challenges SET
	            title = $1, slug = $2, description = $3, input = $4, expected_output = $5,
	            difficulty = $6, language = $7, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $8`
	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, c.Title, c.Slug, c.Description, c.Input, c.ExpectedOutput, c.Difficulty, c.Language, c.ID)
	} else {
		res, err = r.db.ExecContext(ctx, query, c.Title, c.Slug, c.Description, c.Input, c.ExpectedOutput, c.Difficulty, c.Language, c.ID)
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("challenge with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgChallengeRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgChallengeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgChallengeRepository) SetTags(ctx context.Context, tx *sql.Tx, challengeID string, tagIDs []string) error {
	del := `DELETE FROM challenge_tags WHERE challenge_id = $1`
	ins := `INSERT INTO challenge_tags (challenge_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, del, challengeID)
	} else {
		_, err = r.db.ExecContext(ctx, del, challengeID)
	}
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.SetTags: clear: %w", err)
	}
	for _, tagID := range tagIDs {
		if tx != nil {
			_, err = tx.ExecContext(ctx, ins, challengeID, tagID)
		} else {
			_, err = r.db.ExecContext(ctx, ins, challengeID, tagID)
		}
		if err != nil {
			return fmt.Errorf("pgChallengeRepository.SetTags: insert tag %s: %w", tagID, err)
		}
	}
	return nil
}

func (r *pgChallengeRepository) GetTags(ctx context.Context, challengeID string) ([]model.Tag, error) {
	query := `SELECT t.id, t.name
	          FROM tags t
	          JOIN challenge_tags ct ON t.id = ct.tag_id
	          WHERE ct.challenge_id = $1
	          ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, query, challengeID)
	if err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.GetTags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("pgChallengeRepository.GetTags: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
