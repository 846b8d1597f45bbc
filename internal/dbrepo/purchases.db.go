package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

type PurchaseRepo struct {
	db *pgxpool.Pool
}

func NewPurchaseRepo(db *pgxpool.Pool) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

// CreatePurchase inserts a new purchase
func (r *PurchaseRepo) CreatePurchase(ctx context.Context, p *models.Purchase) error {
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	query := `
		INSERT INTO purchases (supplier_id, currency, total, status, date, is_returned, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.SupplierID, p.Currency, p.Total, p.Status, p.Date, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetPurchaseByID fetches a single purchase with the supplier name joined in
func (r *PurchaseRepo) GetPurchaseByID(ctx context.Context, id int64) (*models.Purchase, error) {
	var p models.Purchase
	query := `
		SELECT p.id, p.supplier_id, COALESCE(sp.name, '-'), p.currency, p.total,
		       p.status, p.date, p.is_returned, COALESCE(p.notes, ''), p.created_at, p.updated_at
		FROM purchases p
		LEFT JOIN suppliers sp ON sp.id = p.supplier_id
		WHERE p.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SupplierID, &p.SupplierName, &p.Currency, &p.Total,
		&p.Status, &p.Date, &p.IsReturned, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// ListPurchases retrieves purchases with optional filters and pagination
func (r *PurchaseRepo) ListPurchases(ctx context.Context, supplierID int64, currency, status string, startDate, endDate time.Time, page, limit int64) ([]models.Purchase, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	whereClauses := []string{}
	args := []interface{}{}
	argID := 1

	if supplierID > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("p.supplier_id = $%d", argID))
		args = append(args, supplierID)
		argID++
	}
	if currency != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("p.currency = $%d", argID))
		args = append(args, currency)
		argID++
	}
	if status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("p.status = $%d", argID))
		args = append(args, status)
		argID++
	}
	if !startDate.IsZero() && !endDate.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("p.date::date BETWEEN $%d AND $%d", argID, argID+1))
		args = append(args, startDate, endDate)
		argID += 2
	}

	whereStr := ""
	if len(whereClauses) > 0 {
		whereStr = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM purchases p`+whereStr, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}
	if totalCount == 0 {
		return []models.Purchase{}, 0, nil
	}

	query := `
		SELECT p.id, p.supplier_id, COALESCE(sp.name, '-'), p.currency, p.total,
		       p.status, p.date, p.is_returned, COALESCE(p.notes, ''), p.created_at, p.updated_at
		FROM purchases p
		LEFT JOIN suppliers sp ON sp.id = p.supplier_id
	` + whereStr +
		fmt.Sprintf(" ORDER BY p.date DESC, p.id DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(
			&p.ID, &p.SupplierID, &p.SupplierName, &p.Currency, &p.Total,
			&p.Status, &p.Date, &p.IsReturned, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("row scan failed: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return purchases, totalCount, nil
}

// ReturnPurchase soft-voids a purchase, keeping the record for the audit trail
func (r *PurchaseRepo) ReturnPurchase(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE purchases SET is_returned = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_returned = FALSE
	`, id)
	if err != nil {
		return fmt.Errorf("return purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AllPurchases loads the full purchases snapshot for the finance core
func (r *PurchaseRepo) AllPurchases(ctx context.Context) ([]models.Purchase, error) {
	query := `
		SELECT id, supplier_id, currency, total, status, date, is_returned
		FROM purchases
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Currency, &p.Total, &p.Status, &p.Date, &p.IsReturned); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return purchases, nil
}
