package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealerhub/dealership-service/internal/config"
	"github.com/dealerhub/dealership-service/internal/domain"
	apperrors "github.com/dealerhub/dealership-service/pkg/util"
)

type fakeUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 168,
		BcryptCost:    bcrypt.MinCost,
	}, repo)
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	user, token, exp, err := svc.Register(context.Background(), "Buyer", "Buyer@Example.com ", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now().Add(6*24*time.Hour)))

	// email is case-normalized, password only stored hashed
	assert.Equal(t, "buyer@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "Buyer", claims.Name)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	first, _, _, err := svc.Register(context.Background(), "A", "dup@example.com", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "B", "DUP@example.com", "hunter33")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "User already exists", domainErr.Message)

	// first account unaffected
	stored, err := repo.GetByEmail(context.Background(), "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "A", stored.Name)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	_, _, _, err := svc.Register(context.Background(), "Buyer", "buyer@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, token, _, err := svc.Login(context.Background(), "buyer@example.com", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "buyer@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "buyer@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")
		require.Error(t, err)
		// same answer as a wrong password, no account-existence leak
		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
	})
}
