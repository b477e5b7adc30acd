package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"islamicapp/internal/model"

	"github.com/stretchr/testify/assert"
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

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		PublicID:     username + "-public-id",
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestIncrementUpsertCreatesAndAccumulates(t *testing.T) {
	db := newTestDB(t)
	repo := NewTasbehRepository(db)
	user := createTestUser(t, db, "upsert")
	ctx := context.Background()
	phrase := model.TasbehPhrases[0]

	require.NoError(t, repo.IncrementUpsert(ctx, user.ID, phrase, 3))
	record, err := repo.Get(ctx, user.ID, phrase)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(3), record.Count)

	require.NoError(t, repo.IncrementUpsert(ctx, user.ID, phrase, 2))
	record, err = repo.Get(ctx, user.ID, phrase)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(5), record.Count)

	// (user_id, phrase) 唯一，反复累加不会多出行
	var rows int64
	require.NoError(t, db.Model(&model.TasbehCount{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestIncrementUpsertIsolatedPerPhrase(t *testing.T) {
	db := newTestDB(t)
	repo := NewTasbehRepository(db)
	user := createTestUser(t, db, "phrases")
	ctx := context.Background()

	require.NoError(t, repo.IncrementUpsert(ctx, user.ID, model.TasbehPhrases[0], 7))
	require.NoError(t, repo.IncrementUpsert(ctx, user.ID, model.TasbehPhrases[1], 1))

	records, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestDeleteByPhraseIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewTasbehRepository(db)
	user := createTestUser(t, db, "reset")
	ctx := context.Background()
	phrase := model.TasbehPhrases[2]

	// 行不存在时删除也不报错
	require.NoError(t, repo.DeleteByPhrase(ctx, user.ID, phrase))

	require.NoError(t, repo.IncrementUpsert(ctx, user.ID, phrase, 4))
	require.NoError(t, repo.DeleteByPhrase(ctx, user.ID, phrase))

	record, err := repo.Get(ctx, user.ID, phrase)
	require.NoError(t, err)
	assert.Nil(t, record)

	// 重置后再计数从头开始
	require.NoError(t, repo.IncrementUpsert(ctx, user.ID, phrase, 1))
	record, err = repo.Get(ctx, user.ID, phrase)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(1), record.Count)
}
