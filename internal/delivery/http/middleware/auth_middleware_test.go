package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storybook/internal/domain/entity"
	"storybook/internal/domain/repository"
	"storybook/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokenService struct {
	claims *service.Claims
	err    error
}

func (s *stubTokenService) GenerateToken(uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubTokenService) ValidateToken(string) (*service.Claims, error) {
	return s.claims, s.err
}

type stubUserRepository struct {
	user *entity.User
	err  error
}

func (s *stubUserRepository) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return s.user, s.err
}

func (s *stubUserRepository) FindByEmail(context.Context, string) (*entity.User, error) {
	return s.user, s.err
}

func (s *stubUserRepository) Create(context.Context, *entity.User) error { return nil }

func (s *stubUserRepository) Update(context.Context, *entity.User) error { return nil }

func invokeAuth(t *testing.T, m *AuthMiddleware, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := m.Authenticate(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, reached
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(
		&stubTokenService{claims: &service.Claims{UserID: userID}},
		&stubUserRepository{user: &entity.User{ID: userID}},
	)

	rec, reached := invokeAuth(t, m, "Bearer some-token")
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{}, &stubUserRepository{})

	rec, reached := invokeAuth(t, m, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{}, &stubUserRepository{})

	rec, reached := invokeAuth(t, m, "Basic dXNlcjpwYXNz")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(
		&stubTokenService{err: assert.AnError},
		&stubUserRepository{},
	)

	rec, reached := invokeAuth(t, m, "Bearer bad-token")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_DeletedAccount(t *testing.T) {
	m := NewAuthMiddleware(
		&stubTokenService{claims: &service.Claims{UserID: uuid.New()}},
		&stubUserRepository{err: repository.ErrUserNotFound},
	)

	rec, reached := invokeAuth(t, m, "Bearer some-token")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
