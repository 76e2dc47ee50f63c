package store

import (
	"context"

	"github.com/Simplici0/calhas/internal/model"
)

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, scanTime(&u.CreatedAt))
	if err != nil {
		return model.User{}, mapErr("get user", err)
	}
	return u, nil
}

// GetUser loads a user by id. A session token can outlive its user.
func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, scanTime(&u.CreatedAt))
	if err != nil {
		return model.User{}, mapErr("get user", err)
	}
	return u, nil
}
