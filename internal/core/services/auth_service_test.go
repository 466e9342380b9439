package services

import (
	"context"
	"testing"

	"campushub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceFixture() (*AuthService, *mockUserRepo, *mockRefreshTokenRepo) {
	userRepo := newMockUserRepo()
	tokenRepo := newMockRefreshTokenRepo()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(userRepo, tokenRepo, cfg), userRepo, tokenRepo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("self-registration yields a student", func(t *testing.T) {
		svc, _, tokenRepo := newAuthServiceFixture()

		result, err := svc.Register(ctx, &RegisterInput{
			Name:     "Alice",
			Email:    "Alice@Campus.EDU",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "STUDENT", result.User.Role)
		assert.Equal(t, "alice@campus.edu", result.User.Email)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, 1, tokenRepo.activeCount(result.User.ID))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, _, _ := newAuthServiceFixture()

		_, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &RegisterInput{
			Name: "Alice Again", Email: "alice@campus.edu", Password: "password123",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceFixture()

		_, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)

		result, err := svc.Login(ctx, &LoginInput{Email: "alice@campus.edu", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotNil(t, userRepo.users[result.User.ID].LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := newAuthServiceFixture()

		_, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &LoginInput{Email: "alice@campus.edu", Password: "wrongpass99"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newAuthServiceFixture()

		_, err := svc.Login(ctx, &LoginInput{Email: "ghost@campus.edu", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceFixture()

		result, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)
		userRepo.users[result.User.ID].IsActive = false

		_, err = svc.Login(ctx, &LoginInput{Email: "alice@campus.edu", Password: "password123"})
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh issues new pair and revokes the old token", func(t *testing.T) {
		svc, _, tokenRepo := newAuthServiceFixture()

		reg, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, reg.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

		// Exactly one live token after rotation
		assert.Equal(t, 1, tokenRepo.activeCount(reg.User.ID))
	})

	t.Run("reusing a rotated-out token fails", func(t *testing.T) {
		svc, _, _ := newAuthServiceFixture()

		reg, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, reg.RefreshToken)
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, reg.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		svc, _, _ := newAuthServiceFixture()

		_, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("logout revokes the session token", func(t *testing.T) {
		svc, _, tokenRepo := newAuthServiceFixture()

		reg, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, reg.RefreshToken))
		assert.Equal(t, 0, tokenRepo.activeCount(reg.User.ID))

		_, err = svc.RefreshToken(ctx, reg.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("logout-all revokes every session", func(t *testing.T) {
		svc, _, tokenRepo := newAuthServiceFixture()

		reg, err := svc.Register(ctx, &RegisterInput{
			Name: "Alice", Email: "alice@campus.edu", Password: "password123",
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &LoginInput{Email: "alice@campus.edu", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, 2, tokenRepo.activeCount(reg.User.ID))

		require.NoError(t, svc.LogoutAll(ctx, reg.User.ID))
		assert.Equal(t, 0, tokenRepo.activeCount(reg.User.ID))
	})
}
