package repository

import (
	"context"
	"database/sql"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type SolveRepository interface {
	// Create inserts the solve record. The (user_id, challenge_id) primary
	// key is the already-solved conflict signal; a constraint hit comes back
	// as ErrConflict, which keeps the operation safe under concurrent
	// submissions for the same pair.
	Create(ctx context.Context, tx *sql.Tx, record *model.SolveRecord) error

	Exists(ctx context.Context, userID, challengeID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]model.SolveRecord, error)
}

type pgSolveRepository struct {
	db *sql.DB
}

func NewPgSolveRepository(db *sql.DB) SolveRepository {
	return &pgSolveRepository{db: db}
}

func (r *pgSolveRepository) Create(ctx context.Context, tx *sql.Tx, record *model.SolveRecord) error {
	query := `INSERT INTO user_challenges (user_id, challenge_id, solution) VALUES ($1, $2, $3)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, record.UserID, record.ChallengeID, record.Solution)
	} else {
		_, err = r.db.ExecContext(ctx, query, record.UserID, record.ChallengeID, record.Solution)
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("challenge already solved by user: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgSolveRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSolveRepository) Exists(ctx context.Context, userID, challengeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_challenges WHERE user_id = $1 AND challenge_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, challengeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgSolveRepository.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgSolveRepository) ListForUser(ctx context.Context, userID string) ([]model.SolveRecord, error) {
	query := `SELECT user_id, challenge_id, solution, solved_at FROM user_challenges WHERE user_id = $1 ORDER BY solved_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgSolveRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var records []model.SolveRecord
	for rows.Next() {
		var record model.SolveRecord
		if err := rows.Scan(&record.UserID, &record.ChallengeID, &record.Solution, &record.SolvedAt); err != nil {
			return nil, fmt.Errorf("pgSolveRepository.ListForUser: scan: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
