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

type SaleRepo struct {
	db *pgxpool.Pool
}

func NewSaleRepo(db *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{db: db}
}

// CreateSale inserts a new sale
func (r *SaleRepo) CreateSale(ctx context.Context, s *models.Sale) error {
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	query := `
		INSERT INTO sales (customer_id, currency, total, status, date, is_returned, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		s.CustomerID, s.Currency, s.Total, s.Status, s.Date, s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetSaleByID fetches a single sale with the customer name joined in
func (r *SaleRepo) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	var s models.Sale
	query := `
		SELECT s.id, s.customer_id, COALESCE(c.name, '-'), s.currency, s.total,
		       s.status, s.date, s.is_returned, COALESCE(s.notes, ''), s.created_at, s.updated_at
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CustomerID, &s.CustomerName, &s.Currency, &s.Total,
		&s.Status, &s.Date, &s.IsReturned, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListSales retrieves sales with optional filters and pagination
func (r *SaleRepo) ListSales(ctx context.Context, customerID int64, currency, status string, startDate, endDate time.Time, page, limit int64) ([]models.Sale, int64, error) {
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

	if customerID > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("s.customer_id = $%d", argID))
		args = append(args, customerID)
		argID++
	}
	if currency != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("s.currency = $%d", argID))
		args = append(args, currency)
		argID++
	}
	if status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("s.status = $%d", argID))
		args = append(args, status)
		argID++
	}
	if !startDate.IsZero() && !endDate.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("s.date::date BETWEEN $%d AND $%d", argID, argID+1))
		args = append(args, startDate, endDate)
		argID += 2
	}

	whereStr := ""
	if len(whereClauses) > 0 {
		whereStr = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales s`+whereStr, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}
	if totalCount == 0 {
		return []models.Sale{}, 0, nil
	}

	query := `
		SELECT s.id, s.customer_id, COALESCE(c.name, '-'), s.currency, s.total,
		       s.status, s.date, s.is_returned, COALESCE(s.notes, ''), s.created_at, s.updated_at
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
	` + whereStr +
		fmt.Sprintf(" ORDER BY s.date DESC, s.id DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(
			&s.ID, &s.CustomerID, &s.CustomerName, &s.Currency, &s.Total,
			&s.Status, &s.Date, &s.IsReturned, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("row scan failed: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return sales, totalCount, nil
}

// ReturnSale soft-voids a sale. The record stays on file for the audit trail
// and is excluded from every balance and cash computation from then on.
func (r *SaleRepo) ReturnSale(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sales SET is_returned = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_returned = FALSE
	`, id)
	if err != nil {
		return fmt.Errorf("return sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AllSales loads the full sales snapshot for the finance core
func (r *SaleRepo) AllSales(ctx context.Context) ([]models.Sale, error) {
	query := `
		SELECT id, customer_id, currency, total, status, date, is_returned
		FROM sales
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.Currency, &s.Total, &s.Status, &s.Date, &s.IsReturned); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return sales, nil
}
