package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"map2map-portal/internal/core/domain/business"
	"map2map-portal/internal/core/ports"
)

// BusinessRepository implements ports.BusinessRepository using PostgreSQL.
type BusinessRepository struct {
	db *pgxpool.Pool
}

func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{db: db}
}

var _ ports.BusinessRepository = (*BusinessRepository)(nil)

// FindByOwner returns the oldest business owned by the user.
func (r *BusinessRepository) FindByOwner(ctx context.Context, userID string) (business.Business, error) {
	query := `
		SELECT owner_id, name, phone, address
		FROM businesses
		WHERE owner_id = $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	var b business.Business
	err := r.db.QueryRow(ctx, query, userID).Scan(&b.OwnerID, &b.Name, &b.Phone, &b.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return business.Business{}, business.ErrNotFound
		}
		return business.Business{}, fmt.Errorf("failed to fetch business: %w", err)
	}
	return b, nil
}

// Save inserts a business record. There is no HTTP surface for it yet; it
// backs seeding and tests.
func (r *BusinessRepository) Save(ctx context.Context, b business.Business) error {
	if err := b.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO businesses (id, owner_id, name, phone, address) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, query, uuid.NewString(), b.OwnerID, b.Name, b.Phone, b.Address); err != nil {
		return fmt.Errorf("failed to insert business: %w", err)
	}
	return nil
}
