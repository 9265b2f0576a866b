package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/havenlist/estate-api/internal/model"
)

type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// GetByEmail fetches an admin by normalized email.  Admin accounts are
// provisioned out of band; there is no self-registration path.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Admin
	var perms sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,permissions,created_at,updated_at FROM admins WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.Email, &a.PasswordHash, &perms, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	if perms.Valid {
		a.Permissions = []byte(perms.String)
	}
	return a, err
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	var a model.Admin
	var perms sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,permissions,created_at,updated_at FROM admins WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Email, &a.PasswordHash, &perms, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	if perms.Valid {
		a.Permissions = []byte(perms.String)
	}
	return a, err
}
