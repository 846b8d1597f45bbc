package dbrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

type WasteRepo struct {
	db *pgxpool.Pool
}

func NewWasteRepo(db *pgxpool.Pool) *WasteRepo {
	return &WasteRepo{db: db}
}

// CreateWaste records a spoiled-stock write-off. Waste never touches party
// balances or cash; it exists for loss tracking only.
func (r *WasteRepo) CreateWaste(ctx context.Context, w *models.Waste) error {
	if w.Date.IsZero() {
		w.Date = time.Now()
	}
	query := `
		INSERT INTO waste (description, quantity, amount, currency, date, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, w.Description, w.Quantity, w.Amount, w.Currency, w.Date).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert waste: %w", err)
	}
	return nil
}

// ListWaste retrieves waste records, newest first
func (r *WasteRepo) ListWaste(ctx context.Context, page, limit int64) ([]models.Waste, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM waste`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}
	if totalCount == 0 {
		return []models.Waste{}, 0, nil
	}

	query := `
		SELECT id, description, quantity, amount, currency, date, created_at
		FROM waste
		ORDER BY date DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	var wastes []models.Waste
	for rows.Next() {
		var w models.Waste
		if err := rows.Scan(&w.ID, &w.Description, &w.Quantity, &w.Amount, &w.Currency, &w.Date, &w.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("row scan failed: %w", err)
		}
		wastes = append(wastes, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return wastes, totalCount, nil
}
