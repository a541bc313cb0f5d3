package rest

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"map2map-portal/internal/adapter/web"
	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/domain/business"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) BeginLogin(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CompleteLogin(ctx context.Context, state, code string) (string, auth.User, error) {
	args := m.Called(ctx, state, code)
	return args.String(0), args.Get(1).(auth.User), args.Error(2)
}

func (m *MockAuthService) Check(ctx context.Context, token string) (auth.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Ask(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) ForUser(ctx context.Context, userID string) (*business.Business, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*business.Business), args.Error(1)
}

var (
	testCookie = SessionCookie{Name: DefaultCookieName, TTL: time.Hour}
	ada        = auth.User{ID: "user-1", Email: "ada@example.com", Name: "Ada"}
)

func testRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	r, err := web.NewRenderer()
	require.NoError(t, err)
	return r
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
