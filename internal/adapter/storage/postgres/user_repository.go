package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/ports"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// Upsert keys on the provider subject, so a returning user keeps their ID.
func (r *UserRepository) Upsert(ctx context.Context, user auth.User) (auth.User, error) {
	if err := user.Validate(); err != nil {
		return auth.User{}, fmt.Errorf("invalid user: %w", err)
	}

	query := `
		INSERT INTO users (id, subject, email, name, picture)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (subject) DO UPDATE
		SET email = EXCLUDED.email,
			name = EXCLUDED.name,
			picture = EXCLUDED.picture,
			updated_at = NOW()
		RETURNING id, subject, email, name, picture
	`
	var stored auth.User
	err := r.db.QueryRow(ctx, query, user.ID, user.Subject, user.Email, user.Name, user.Picture).
		Scan(&stored.ID, &stored.Subject, &stored.Email, &stored.Name, &stored.Picture)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to save user: %w", err)
	}
	return stored, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (auth.User, error) {
	query := `SELECT id, subject, email, name, picture FROM users WHERE id = $1`

	var user auth.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Subject, &user.Email, &user.Name, &user.Picture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
