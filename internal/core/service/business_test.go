package service

import (
	"context"
	"errors"
	"testing"

	"map2map-portal/internal/core/domain/business"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindByOwner(ctx context.Context, userID string) (business.Business, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(business.Business), args.Error(1)
}

func TestBusinessService_ForUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := new(MockBusinessRepository)
		b := business.Business{OwnerID: "u1", Name: "Corner Bakery", Phone: "555-0100", Address: "1 Main St"}
		repo.On("FindByOwner", mock.Anything, "u1").Return(b, nil)

		got, err := NewBusinessService(repo).ForUser(context.Background(), "u1")
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, b, *got)
		}
	})

	t.Run("none on record", func(t *testing.T) {
		repo := new(MockBusinessRepository)
		repo.On("FindByOwner", mock.Anything, "u2").Return(business.Business{}, business.ErrNotFound)

		got, err := NewBusinessService(repo).ForUser(context.Background(), "u2")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("storage error", func(t *testing.T) {
		repo := new(MockBusinessRepository)
		repo.On("FindByOwner", mock.Anything, "u3").Return(business.Business{}, errors.New("conn reset"))

		got, err := NewBusinessService(repo).ForUser(context.Background(), "u3")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
