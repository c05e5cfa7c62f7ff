package repository

import (
	"context"
	"database/sql"
	"fmt"

	"codequest/internal/common"
	"codequest/internal/domain/model"
)

type PurchaseRepository interface {
	// Create records the redemption; the composite key turns a repeat
	// purchase into ErrConflict.
	Create(ctx context.Context, tx *sql.Tx, purchase *model.Purchase) error
	ListForUser(ctx context.Context, userID string) ([]model.Purchase, error)
}

type pgPurchaseRepository struct {
	db *sql.DB
}

func NewPgPurchaseRepository(db *sql.DB) PurchaseRepository {
	return &pgPurchaseRepository{db: db}
}

func (r *pgPurchaseRepository) Create(ctx context.Context, tx *sql.Tx, p *model.Purchase) error {
	query := `INSERT INTO purchases (user_id, resource_id) VALUES ($1, $2)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.UserID, p.ResourceID)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.UserID, p.ResourceID)
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("resource already purchased: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgPurchaseRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPurchaseRepository) ListForUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	query := `SELECT user_id, resource_id, purchase_date FROM purchases WHERE user_id = $1 ORDER BY purchase_date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgPurchaseRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var purchase model.Purchase
		if err := rows.Scan(&purchase.UserID, &purchase.ResourceID, &purchase.PurchaseDate); err != nil {
			return nil, fmt.Errorf("pgPurchaseRepository.ListForUser: scan: %w", err)
		}
		purchases = append(purchases, purchase)
	}
	return purchases, rows.Err()
}
