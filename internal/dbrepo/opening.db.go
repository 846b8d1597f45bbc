package dbrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

type OpeningBalanceRepo struct {
	db *pgxpool.Pool
}

func NewOpeningBalanceRepo(db *pgxpool.Pool) *OpeningBalanceRepo {
	return &OpeningBalanceRepo{db: db}
}

// CreateOpeningBalance records a party's starting position as its own entity;
// it is folded into the credit ledger at report time, never into sales rows.
func (r *OpeningBalanceRepo) CreateOpeningBalance(ctx context.Context, ob *models.OpeningBalance) error {
	if ob.Date.IsZero() {
		ob.Date = time.Now()
	}
	query := `
		INSERT INTO opening_balances (person_id, person_type, balance_type, amount, currency, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		ob.PersonID, ob.PersonType, ob.BalanceType, ob.Amount, ob.Currency, ob.Date, ob.Notes,
	).Scan(&ob.ID, &ob.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert opening balance: %w", err)
	}
	return nil
}

// ListOpeningBalances retrieves opening balances, optionally for one party
func (r *OpeningBalanceRepo) ListOpeningBalances(ctx context.Context, personID int64, personType string) ([]models.OpeningBalance, error) {
	query := fmt.Sprintf(`
		SELECT ob.id, ob.person_id, ob.person_type, ob.balance_type,
		       COALESCE(
		           CASE
		               WHEN ob.person_type = '%[1]s' THEN c.name
		               WHEN ob.person_type = '%[2]s' THEN s.name
		               ELSE NULL
		           END, '-') AS person_name,
		       ob.amount, ob.currency, ob.date, COALESCE(ob.notes, ''), ob.created_at
		FROM opening_balances ob
		LEFT JOIN customers c ON ob.person_type = '%[1]s' AND ob.person_id = c.id
		LEFT JOIN suppliers s ON ob.person_type = '%[2]s' AND ob.person_id = s.id
	`, models.PERSON_CUSTOMER, models.PERSON_SUPPLIER)

	args := []interface{}{}
	if personID > 0 && personType != "" {
		query += ` WHERE ob.person_id = $1 AND ob.person_type = $2`
		args = append(args, personID, personType)
	}
	query += ` ORDER BY ob.date DESC, ob.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var balances []models.OpeningBalance
	for rows.Next() {
		var ob models.OpeningBalance
		if err := rows.Scan(
			&ob.ID, &ob.PersonID, &ob.PersonType, &ob.BalanceType, &ob.PersonName,
			&ob.Amount, &ob.Currency, &ob.Date, &ob.Notes, &ob.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		balances = append(balances, ob)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return balances, nil
}

// AllOpeningBalances loads the full snapshot for the finance core
func (r *OpeningBalanceRepo) AllOpeningBalances(ctx context.Context) ([]models.OpeningBalance, error) {
	query := `
		SELECT id, person_id, person_type, balance_type, amount, currency, date
		FROM opening_balances
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	defer rows.Close()

	var balances []models.OpeningBalance
	for rows.Next() {
		var ob models.OpeningBalance
		if err := rows.Scan(&ob.ID, &ob.PersonID, &ob.PersonType, &ob.BalanceType, &ob.Amount, &ob.Currency, &ob.Date); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		balances = append(balances, ob)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return balances, nil
}
