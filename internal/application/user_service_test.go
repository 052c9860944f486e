package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/pkg/helpers"
)

func newUserService(users *fakeUserRepo) *UserService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewUserService(users, jwt, testLogger(), nil, false, nil, "")
}

func TestUserService_Register(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	token, err := svc.Register(ctx, "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	u, err := users.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
	assert.NotEqual(t, "secret123", u.Password, "password must be stored hashed")
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secret123"))
	assert.Contains(t, u.Avatar, "gravatar.com/avatar/")

	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "jane@example.com", "other456")
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.Equal(t, "User already exists", err.Error())
}

func TestUserService_Login(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "secret123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "jane@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "jane@example.com", "wrong")
		assert.True(t, errors.Is(err, apperror.ErrValidation))
		assert.Equal(t, "Invalid credentials", err.Error())
	})

	t.Run("unknown email yields the same message", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.True(t, errors.Is(err, apperror.ErrValidation))
		assert.Equal(t, "Invalid credentials", err.Error())
	})
}

func TestUserService_CurrentUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)
	ctx := context.Background()
	u := seedUser(t, users, "Jane", "jane@example.com")

	got, err := svc.CurrentUser(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "jane@example.com", got.Email)

	t.Run("malformed id reads as not found", func(t *testing.T) {
		_, err := svc.CurrentUser(ctx, "not-a-hex-id")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})
}
