package services_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coinwatch/src/config"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/services"
	"coinwatch/src/utils"
	"coinwatch/tests/init_test"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) *services.UserService {
	t.Helper()

	root, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, statErr := os.Stat(filepath.Join(root, "go.mod")); statErr == nil {
			break
		}
		parent := filepath.Dir(root)
		require.NotEqual(t, root, parent, "go.mod not found")
		root = parent
	}

	cfg, err := config.LoadConfig(filepath.Join(root, "settings"), "TESTING")
	require.NoError(t, err)

	dsn := cfg.Databases.SQL.ConnectionString
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Databases.SQL.Host,
			cfg.Databases.SQL.Username,
			cfg.Databases.SQL.Password,
			cfg.Databases.SQL.Database,
			cfg.Databases.SQL.Port)
	}
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)
	return services.NewUserService(gormDB, tokenAuth, 24*time.Hour)
}

func TestUserService(t *testing.T) {
	db := init_test.SetupTestDB(t)
	svc := setupUserService(t)
	ctx := context.Background()

	t.Run("Register then IssueToken", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		user, err := svc.Register(ctx, &schemas.UserRequest{
			Username: "carol",
			Email:    "carol@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "user", user.Role)

		token, err := svc.IssueToken(ctx, "carol", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "bearer", token.TokenType)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := svc.Register(ctx, &schemas.UserRequest{
			Username: "carol",
			Email:    "carol@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &schemas.UserRequest{
			Username: "carol",
			Email:    "other@example.com",
			Password: "correct-horse",
		})
		assert.True(t, errors.Is(err, repositories.ErrConflict))
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := svc.Register(ctx, &schemas.UserRequest{
			Username: "carol",
			Email:    "carol@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		_, err = svc.IssueToken(ctx, "carol", "wrong-horse")
		assert.True(t, errors.Is(err, utils.ErrInvalidCredentials))
	})

	t.Run("unknown user is rejected without leaking existence", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := svc.IssueToken(ctx, "nobody", "whatever")
		assert.True(t, errors.Is(err, utils.ErrInvalidCredentials))
	})
}
