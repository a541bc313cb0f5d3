package postgres

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/domain/business"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbPool, err := Connect(ctx, connStr, slog.Default())
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if err := RunMigrations(ctx, dbPool, slog.Default()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cleanup := func() {
		dbPool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres: %v", err)
		}
	}

	return dbPool, cleanup
}

func TestRepositories_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbPool, cleanup := setupTestDB(t)
	defer cleanup()

	users := NewUserRepository(dbPool)
	businesses := NewBusinessRepository(dbPool)
	ctx := context.Background()

	t.Run("migrations are idempotent", func(t *testing.T) {
		assert.NoError(t, RunMigrations(ctx, dbPool, slog.Default()))
	})

	t.Run("upsert keeps id for returning subject", func(t *testing.T) {
		first, err := users.Upsert(ctx, auth.User{ID: uuid.NewString(), Subject: "g-1", Email: "ada@example.com", Name: "Ada"})
		require.NoError(t, err)

		second, err := users.Upsert(ctx, auth.User{ID: uuid.NewString(), Subject: "g-1", Email: "ada@newmail.com", Name: "Ada L.", Picture: "https://img/ada.png"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "ada@newmail.com", second.Email)

		found, err := users.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", found.Name)
		assert.Equal(t, "https://img/ada.png", found.Picture)
		assert.Equal(t, "g-1", found.Subject)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.FindByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("invalid user rejected", func(t *testing.T) {
		_, err := users.Upsert(ctx, auth.User{Subject: "g-x"})
		assert.Error(t, err)
	})

	t.Run("concurrent first logins converge", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make([]string, 10)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				u, err := users.Upsert(ctx, auth.User{ID: uuid.NewString(), Subject: "g-race", Email: "race@example.com"})
				assert.NoError(t, err)
				ids[i] = u.ID
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}
	})

	t.Run("business lookup", func(t *testing.T) {
		owner, err := users.Upsert(ctx, auth.User{ID: uuid.NewString(), Subject: "g-biz", Email: "owner@example.com"})
		require.NoError(t, err)

		_, err = businesses.FindByOwner(ctx, owner.ID)
		assert.ErrorIs(t, err, business.ErrNotFound)

		b := business.Business{OwnerID: owner.ID, Name: "Corner Bakery", Phone: "555-0100", Address: "1 Main St"}
		require.NoError(t, businesses.Save(ctx, b))

		got, err := businesses.FindByOwner(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})
}
