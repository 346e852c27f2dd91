package readstore

import (
	"context"

	"zurbo/internal/infra"
	"zurbo/internal/infra/db"
	"zurbo/internal/usecase/queries"

	"github.com/google/uuid"
)

const (
	findUserViewByIDSQL = `
SELECT id, email, role, display_name, is_active, last_login
FROM users WHERE id = $1`

	findUserViewByEmailSQL = `
SELECT id, email, role, display_name, is_active, last_login, password_hash
FROM users WHERE email = $1`
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{
		db: db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserViewByIDSQL, id).
		Scan(&v.ID, &v.Email, &v.Role, &v.DisplayName, &v.IsActive, &v.LastLogin)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		v    queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx, findUserViewByEmailSQL, email).
		Scan(&v.ID, &v.Email, &v.Role, &v.DisplayName, &v.IsActive, &v.LastLogin, &hash)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &v, hash, nil
}
