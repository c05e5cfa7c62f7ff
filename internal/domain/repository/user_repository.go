package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error

	ListByScore(ctx context.Context, limit, offset int) ([]model.User, error)

	// CreditSolve adds points to both score and reward balance in one
	// statement and returns the score from before the increment.
	CreditSolve(ctx context.Context, tx *sql.Tx, userID string, points int) (int, error)

	// CreditReward adds reward points and sets the cooldown expiry.
	CreditReward(ctx context.Context, userID string, points int, expiry time.Time) error

	// DebitRewardPoints subtracts cost only when the balance covers it.
	// Returns false when the conditional update matched no row.
	DebitRewardPoints(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error)

	GetRewardTimer(ctx context.Context, userID string) (time.Time, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, hashed_password, role, score, reward_points, reward_timer, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }, user *model.User) error {
	return row.Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.Role,
		&user.Score, &user.RewardPoints, &user.RewardTimer, &user.CreatedAt, &user.UpdatedAt,
	)
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, hashed_password, role)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.HashedPassword, user.Role)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user := &model.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, id), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user := &model.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, email), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user := &model.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, username), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at LIMIT $1 OFFSET $2`
	return r.queryUsers(ctx, query, limit, offset)
}

func (r *pgUserRepository) Search(ctx context.Context, searchTerm string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username ILIKE $1 ORDER BY username`
	return r.queryUsers(ctx, query, "%"+searchTerm+"%")
}

func (r *pgUserRepository) ListByScore(ctx context.Context, limit, offset int) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY score DESC LIMIT $1 OFFSET $2`
	return r.queryUsers(ctx, query, limit, offset)
}

func (r *pgUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.queryUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("pgUserRepository.queryUsers: scan: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET username = $1, email = $2, hashed_password = $3, role = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.HashedPassword, user.Role, user.ID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("username or email already taken: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) CreditSolve(ctx context.Context, tx *sql.Tx, userID string, points int) (int, error) {
	query := `UPDATE users SET score = score + $1, reward_points = reward_points + $1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $2 RETURNING score - $1`
	var priorScore int
	err := tx.QueryRowContext(ctx, query, points, userID).Scan(&priorScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgUserRepository.CreditSolve: %w", err)
	}
	return priorScore, nil
}

func (r *pgUserRepository) CreditReward(ctx context.Context, userID string, points int, expiry time.Time) error {
	query := `UPDATE users SET reward_points = reward_points + $1, reward_timer = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, points, expiry, userID)
	if err != nil {
		return fmt.Errorf("pgUserRepository.CreditReward: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) DebitRewardPoints(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error) {
	query := `UPDATE users SET reward_points = reward_points - $1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $2 AND reward_points >= $1`
	res, err := tx.ExecContext(ctx, query, cost, userID)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.DebitRewardPoints: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.DebitRewardPoints: rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *pgUserRepository) GetRewardTimer(ctx context.Context, userID string) (time.Time, error) {
	var expiry time.Time
	err := r.db.QueryRowContext(ctx, `SELECT reward_timer FROM users WHERE id = $1`, userID).Scan(&expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, common.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("pgUserRepository.GetRewardTimer: %w", err)
	}
	return expiry, nil
}
