package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dealerhub/dealership-service/internal/domain"
	"github.com/dealerhub/dealership-service/internal/repository"
	apperrors "github.com/dealerhub/dealership-service/pkg/util"
)

const principalKey = "auth_principal"

// TokenCookieName is the session cookie checked alongside the
// Authorization header.
const TokenCookieName = "token"

// Principal represents the authenticated caller. User is nil when the token
// was valid but the referenced account no longer exists.
type Principal struct {
	UserID string
	Email  string
	Name   string
	User   *domain.User
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. The token is read
// from the Authorization header or the session cookie.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		token = c.Cookies(TokenCookieName)
	}
	if token == "" {
		return apperrors.NewUnauthorized("Not authorized, no token")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("Not authorized, token failed")
	}

	principal := &Principal{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	switch {
	case err == nil:
		principal.User = user
	case err == pgx.ErrNoRows:
		// account deleted after issuance: handlers see a nil identity
	default:
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
