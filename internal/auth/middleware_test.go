package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/dealership-service/internal/domain"
	apperrors "github.com/dealerhub/dealership-service/pkg/util"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newAuthTestApp(t *testing.T) (*fiber.App, *TokenManager, *stubUserRepo) {
	t.Helper()

	tm := NewTokenManager("test-secret", 1)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "Seller", Email: "seller@example.com"},
	}}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"success": false, "message": domainErr.Message})
		},
	})

	mw := NewAuthMiddleware(tm, repo)
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"userLoaded": principal.User != nil, "id": principal.UserID})
	})

	return app, tm, repo
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	app, tm, _ := newAuthTestApp(t)
	token, _, err := tm.GenerateToken("user-1", "seller@example.com", "Seller")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareTokenCookie(t *testing.T) {
	app, tm, _ := newAuthTestApp(t)
	token, _, err := tm.GenerateToken("user-1", "seller@example.com", "Seller")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	expiredTM := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := expiredTM.GenerateToken("user-1", "seller@example.com", "Seller")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareDeletedUserYieldsNilIdentity(t *testing.T) {
	app, tm, repo := newAuthTestApp(t)
	token, _, err := tm.GenerateToken("user-1", "seller@example.com", "Seller")
	require.NoError(t, err)
	delete(repo.users, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	// the request proceeds; the handler just sees no loaded user
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
