package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"islamicapp/internal/config"
	"islamicapp/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.TasbehCount{},
		&model.UserPhrase{},
		&model.UserPreference{},
		&model.UserLocation{},
		&model.UserReadingStats{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			AccessTTLMinutes: 60,
			RefreshTTLDays:   30,
		},
	}
}

func registerTestUser(t *testing.T, auth *AuthService, username string) *model.User {
	t.Helper()
	user, _, err := auth.Register(context.Background(), &RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	return user
}
