package dbrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

type ExpenseRepo struct {
	db *pgxpool.Pool
}

func NewExpenseRepo(db *pgxpool.Pool) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

// CreateExpense inserts a new expense
func (r *ExpenseRepo) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	query := `
		INSERT INTO expenses (title, amount, currency, date, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, e.Title, e.Amount, e.Currency, e.Date).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListExpenses retrieves expenses with optional currency and date filters
func (r *ExpenseRepo) ListExpenses(ctx context.Context, currency string, startDate, endDate time.Time, page, limit int64) ([]models.Expense, int64, error) {
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

	if currency != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("currency = $%d", argID))
		args = append(args, currency)
		argID++
	}
	if !startDate.IsZero() && !endDate.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("date::date BETWEEN $%d AND $%d", argID, argID+1))
		args = append(args, startDate, endDate)
		argID += 2
	}

	whereStr := ""
	if len(whereClauses) > 0 {
		whereStr = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM expenses`+whereStr, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}
	if totalCount == 0 {
		return []models.Expense{}, 0, nil
	}

	query := `
		SELECT id, COALESCE(title, ''), amount, currency, date, created_at
		FROM expenses` + whereStr +
		fmt.Sprintf(" ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Currency, &e.Date, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("row scan failed: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return expenses, totalCount, nil
}

// AllExpenses loads the full expenses snapshot for the finance core
func (r *ExpenseRepo) AllExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT id, amount, currency, date FROM expenses`)
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Currency, &e.Date); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return expenses, nil
}
