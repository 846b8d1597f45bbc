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

type VoucherRepo struct {
	db *pgxpool.Pool
}

func NewVoucherRepo(db *pgxpool.Pool) *VoucherRepo {
	return &VoucherRepo{db: db}
}

// voucherSelect resolves the party name from whichever table the person_type
// points at, mirroring how vouchers are displayed.
var voucherSelect = fmt.Sprintf(`
	SELECT v.id, v.person_id, v.person_type,
	       COALESCE(
	           CASE
	               WHEN v.person_type = '%[1]s' THEN c.name
	               WHEN v.person_type = '%[2]s' THEN s.name
	               ELSE NULL
	           END, '-') AS person_name,
	       v.type, v.amount, v.currency, v.date, COALESCE(v.notes, ''), v.created_at
	FROM vouchers v
	LEFT JOIN customers c ON v.person_type = '%[1]s' AND v.person_id = c.id
	LEFT JOIN suppliers s ON v.person_type = '%[2]s' AND v.person_id = s.id
`, models.PERSON_CUSTOMER, models.PERSON_SUPPLIER)

// CreateVoucher inserts a new receipt or payment voucher
func (r *VoucherRepo) CreateVoucher(ctx context.Context, v *models.Voucher) error {
	if v.Date.IsZero() {
		v.Date = time.Now()
	}
	query := `
		INSERT INTO vouchers (person_id, person_type, type, amount, currency, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		v.PersonID, v.PersonType, v.Type, v.Amount, v.Currency, v.Date, v.Notes,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert voucher: %w", err)
	}
	return nil
}

// GetVoucherByID fetches a single voucher with the party name resolved
func (r *VoucherRepo) GetVoucherByID(ctx context.Context, id int64) (*models.Voucher, error) {
	var v models.Voucher
	err := r.db.QueryRow(ctx, voucherSelect+` WHERE v.id = $1`, id).Scan(
		&v.ID, &v.PersonID, &v.PersonType, &v.PersonName,
		&v.Type, &v.Amount, &v.Currency, &v.Date, &v.Notes, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get voucher: %w", err)
	}
	return &v, nil
}

// ListVouchers retrieves vouchers with optional filters and pagination
func (r *VoucherRepo) ListVouchers(ctx context.Context, personID int64, personType, voucherType, currency string, page, limit int64) ([]models.Voucher, int64, error) {
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

	if personID > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("v.person_id = $%d", argID))
		args = append(args, personID)
		argID++
	}
	if personType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("v.person_type = $%d", argID))
		args = append(args, personType)
		argID++
	}
	if voucherType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("v.type = $%d", argID))
		args = append(args, voucherType)
		argID++
	}
	if currency != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("v.currency = $%d", argID))
		args = append(args, currency)
		argID++
	}

	whereStr := ""
	if len(whereClauses) > 0 {
		whereStr = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vouchers v`+whereStr, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}
	if totalCount == 0 {
		return []models.Voucher{}, 0, nil
	}

	query := voucherSelect + whereStr +
		fmt.Sprintf(" ORDER BY v.date DESC, v.id DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	var vouchers []models.Voucher
	for rows.Next() {
		var v models.Voucher
		if err := rows.Scan(
			&v.ID, &v.PersonID, &v.PersonType, &v.PersonName,
			&v.Type, &v.Amount, &v.Currency, &v.Date, &v.Notes, &v.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("row scan failed: %w", err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return vouchers, totalCount, nil
}

// AllVouchers loads the full vouchers snapshot for the finance core
func (r *VoucherRepo) AllVouchers(ctx context.Context) ([]models.Voucher, error) {
	query := `
		SELECT id, person_id, person_type, type, amount, currency, date
		FROM vouchers
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snapshot query failed: %w", err)
	}
	defer rows.Close()

	var vouchers []models.Voucher
	for rows.Next() {
		var v models.Voucher
		if err := rows.Scan(&v.ID, &v.PersonID, &v.PersonType, &v.Type, &v.Amount, &v.Currency, &v.Date); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return vouchers, nil
}
