package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

var ErrPartyReferenced = errors.New("party has recorded transactions and cannot be deleted")

type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// CreateCustomer inserts a new customer
func (r *CustomerRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (name, phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.Name, c.Phone, c.Notes).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetCustomerByID fetches a single customer
func (r *CustomerRepo) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	query := `
		SELECT id, name, phone, COALESCE(notes, ''), created_at, updated_at
		FROM customers WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// UpdateCustomerInfo updates name and contact details only; identity edits
// never touch the transaction history.
func (r *CustomerRepo) UpdateCustomerInfo(ctx context.Context, c *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, notes = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, c.Name, c.Phone, c.Notes, c.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListCustomers retrieves customers with optional name filter and pagination
func (r *CustomerRepo) ListCustomers(ctx context.Context, search string, page, limit int64) ([]models.Customer, int64, error) {
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

	if search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d)", argID, argID))
		args = append(args, "%"+search+"%")
		argID++
	}

	whereStr := ""
	if len(whereClauses) > 0 {
		whereStr = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+whereStr, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}
	if totalCount == 0 {
		return []models.Customer{}, 0, nil
	}

	query := `
		SELECT id, name, phone, COALESCE(notes, ''), created_at, updated_at
		FROM customers` + whereStr +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("row scan failed: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return customers, totalCount, nil
}

// GetCustomersNameAndID returns the lightweight list used by pickers
func (r *CustomerRepo) GetCustomersNameAndID(ctx context.Context) ([]models.PartyNameID, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, phone FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var list []models.PartyNameID
	for rows.Next() {
		var p models.PartyNameID
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return list, nil
}

// DeleteCustomer removes a customer only when no sale, voucher or opening
// balance references them.
func (r *CustomerRepo) DeleteCustomer(ctx context.Context, id int64) error {
	var refs int64
	query := `
		SELECT (SELECT COUNT(*) FROM sales WHERE customer_id = $1)
		     + (SELECT COUNT(*) FROM vouchers WHERE person_id = $1 AND person_type = $2)
		     + (SELECT COUNT(*) FROM opening_balances WHERE person_id = $1 AND person_type = $2)
	`
	if err := r.db.QueryRow(ctx, query, id, models.PERSON_CUSTOMER).Scan(&refs); err != nil {
		return fmt.Errorf("reference check: %w", err)
	}
	if refs > 0 {
		return ErrPartyReferenced
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
