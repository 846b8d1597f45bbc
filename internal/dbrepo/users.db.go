package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshuwaie/qat-ledger-api/internal/models"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// GetUserByUsername fetches a user for signin
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	query := `
		SELECT id, name, username, role, password, agency_name, created_at, updated_at
		FROM users WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Name, &u.Username, &u.Role, &u.Password, &u.AgencyName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a staff account with an already-hashed password
func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (name, username, role, password, agency_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, u.Name, u.Username, u.Role, u.Password, u.AgencyName).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
