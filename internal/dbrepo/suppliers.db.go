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

type SupplierRepo struct {
	db *pgxpool.Pool
}

func NewSupplierRepo(db *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{db: db}
}

// CreateSupplier inserts a new supplier
func (r *SupplierRepo) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	query := `
		INSERT INTO suppliers (name, phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, s.Name, s.Phone, s.Notes).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetSupplierByID fetches a single supplier
func (r *SupplierRepo) GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var s models.Supplier
	query := `
		SELECT id, name, phone, COALESCE(notes, ''), created_at, updated_at
		FROM suppliers WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Phone, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// UpdateSupplierInfo updates name and contact details only
func (r *SupplierRepo) UpdateSupplierInfo(ctx context.Context, s *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, phone = $2, notes = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, s.Name, s.Phone, s.Notes, s.ID)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListSuppliers retrieves suppliers with optional name filter and pagination
func (r *SupplierRepo) ListSuppliers(ctx context.Context, search string, page, limit int64) ([]models.Supplier, int64, error) {
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
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+whereStr, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}
	if totalCount == 0 {
		return []models.Supplier{}, 0, nil
	}

	query := `
		SELECT id, name, phone, COALESCE(notes, ''), created_at, updated_at
		FROM suppliers` + whereStr +
		fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("row scan failed: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return suppliers, totalCount, nil
}

// GetSuppliersNameAndID returns the lightweight list used by pickers
func (r *SupplierRepo) GetSuppliersNameAndID(ctx context.Context) ([]models.PartyNameID, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, phone FROM suppliers ORDER BY name`)
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

// DeleteSupplier removes a supplier only when no purchase, voucher or opening
// balance references them.
func (r *SupplierRepo) DeleteSupplier(ctx context.Context, id int64) error {
	var refs int64
	query := `
		SELECT (SELECT COUNT(*) FROM purchases WHERE supplier_id = $1)
		     + (SELECT COUNT(*) FROM vouchers WHERE person_id = $1 AND person_type = $2)
		     + (SELECT COUNT(*) FROM opening_balances WHERE person_id = $1 AND person_type = $2)
	`
	if err := r.db.QueryRow(ctx, query, id, models.PERSON_SUPPLIER).Scan(&refs); err != nil {
		return fmt.Errorf("reference check: %w", err)
	}
	if refs > 0 {
		return ErrPartyReferenced
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
