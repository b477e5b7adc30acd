package service

import (
	"context"
	"testing"

	"islamicapp/internal/model"
	"islamicapp/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func requireKind(t *testing.T, err error, kind errs.Kind) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errs.Error)
	require.True(t, ok, "expected *errs.Error, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind)
}

func TestRegisterCreatesUserWithDefaults(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	user, tokens, err := auth.Register(ctx, &RegisterRequest{
		Username: "amina",
		Email:    "Amina@X.com",
		Password: "password1",
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	assert.NotEmpty(t, user.PublicID)
	assert.Equal(t, "amina", user.Username)
	assert.Equal(t, "amina@x.com", user.Email) // 邮箱统一小写
	assert.True(t, user.IsActive)
	assert.NotNil(t, user.LastLoginAt)
	assert.NotEqual(t, "password1", user.PasswordHash)

	// 登录时间和建号同一个事务落库
	var stored model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&stored).Error)
	assert.NotNil(t, stored.LastLoginAt)

	// 偏好和阅读进度与用户同事务落库
	var pref model.UserPreference
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&pref).Error)
	assert.Equal(t, "light", pref.Theme)
	assert.Equal(t, 100, pref.DailyGoal)

	var stats model.UserReadingStats
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stats).Error)
	assert.Equal(t, "ar.alafasy", stats.FavoriteReciter)
}

func TestRegisterPublicIDsAreUnique(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	seen := map[string]bool{}
	for _, name := range []string{"user1", "user2", "user3"} {
		user := registerTestUser(t, auth, name)
		assert.False(t, seen[user.PublicID])
		seen[user.PublicID] = true
	}
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Email: "a@x.com", Password: "password1"}},
		{"missing email", RegisterRequest{Username: "a", Password: "password1"}},
		{"missing password", RegisterRequest{Username: "a", Email: "a@x.com"}},
		{"bad email", RegisterRequest{Username: "a", Email: "not-an-email", Password: "password1"}},
		{"short password", RegisterRequest{Username: "a", Email: "a@x.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Register(ctx, &tt.req)
			requireKind(t, err, errs.KindValidation)
		})
	}
}

func TestRegisterDuplicateUsernameConflict(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	registerTestUser(t, auth, "amina")

	// 用户名重复，换了邮箱也不行，且不能留下半条数据
	_, _, err := auth.Register(ctx, &RegisterRequest{
		Username: "amina",
		Email:    "other@x.com",
		Password: "password1",
	})
	requireKind(t, err, errs.KindConflict)

	var userCount int64
	require.NoError(t, db.Model(&model.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)

	var prefCount int64
	require.NoError(t, db.Model(&model.UserPreference{}).Count(&prefCount).Error)
	assert.Equal(t, int64(1), prefCount)
}

func TestRegisterDuplicateRaceMapsToConflict(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	// 预检查通过之后、写入之前，另一个请求抢先注册了同名账号，
	// 唯一索引兜底，错误要映射成 409 而不是 500
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("rival_signup", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*model.User); !ok {
			return
		}
		injected = true
		require.NoError(t, db.Exec(
			"INSERT INTO users (public_id, username, email, password_hash, email_verified, is_active) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), "amina", "rival@example.com", "x", false, true,
		).Error)
	})
	require.NoError(t, err)
	defer db.Callback().Create().Remove("rival_signup")

	_, _, regErr := auth.Register(ctx, &RegisterRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "password1",
	})
	requireKind(t, regErr, errs.KindConflict)
	assert.Equal(t, msgIdentityTaken, regErr.Error())

	// 整个注册事务回滚，只剩抢先提交的那一行，附属表没有残留
	var users []model.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "rival@example.com", users[0].Email)

	var prefCount int64
	require.NoError(t, db.Model(&model.UserPreference{}).Count(&prefCount).Error)
	assert.Equal(t, int64(0), prefCount)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	registerTestUser(t, auth, "amina")

	_, _, err := auth.Register(ctx, &RegisterRequest{
		Username: "someoneelse",
		Email:    "amina@example.com",
		Password: "password1",
	})
	requireKind(t, err, errs.KindConflict)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	created := registerTestUser(t, auth, "amina")

	byName, tokens, err := auth.Login(ctx, "amina", "password1")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, created.PublicID, byName.PublicID)

	byEmail, _, err := auth.Login(ctx, "Amina@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, created.PublicID, byEmail.PublicID)
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	registerTestUser(t, auth, "amina")

	_, _, errUnknown := auth.Login(ctx, "nosuchuser", "password1")
	requireKind(t, errUnknown, errs.KindAuth)

	_, _, errWrongPass := auth.Login(ctx, "amina", "wrongpassword")
	requireKind(t, errWrongPass, errs.KindAuth)

	// 账号不存在和密码错误必须是同一条文案
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	user := registerTestUser(t, auth, "amina")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, _, err := auth.Login(ctx, "amina", "password1")
	requireKind(t, err, errs.KindAuth)
	// 停用是单独文案，和凭证错误区分开
	assert.Equal(t, msgAccountInactive, err.Error())
}

func TestAuthenticateRejectsDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	user := registerTestUser(t, auth, "amina")
	access, err := auth.Tokens().GenerateAccess(user.PublicID)
	require.NoError(t, err)

	// 令牌签名和有效期都没问题，唯一变化是账号被停用
	resolved, err := auth.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, user.PublicID, resolved.PublicID)

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = auth.Authenticate(ctx, access)
	requireKind(t, err, errs.KindAuth)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	user := registerTestUser(t, auth, "amina")
	access, refresh, err := auth.Tokens().GeneratePair(user.PublicID)
	require.NoError(t, err)

	_, err = auth.Refresh(ctx, access)
	requireKind(t, err, errs.KindAuth)

	newAccess, err := auth.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
}

func TestUpdateProfilePartialMerge(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	user := registerTestUser(t, auth, "amina")
	city := "Cairo"

	updated, err := auth.UpdateProfile(ctx, user, &UpdateProfileRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Cairo", updated.City)
	// 没传的字段保持原值
	assert.Equal(t, "amina", updated.Username)
	assert.Equal(t, "amina@example.com", updated.Email)
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	registerTestUser(t, auth, "amina")
	user := registerTestUser(t, auth, "fatima")

	taken := "amina"
	_, err := auth.UpdateProfile(ctx, user, &UpdateProfileRequest{Username: &taken})
	requireKind(t, err, errs.KindConflict)

	// 改回自己的名字不算冲突
	same := "fatima"
	_, err = auth.UpdateProfile(ctx, user, &UpdateProfileRequest{Username: &same})
	require.NoError(t, err)
}

func TestUpdateProfileDuplicateRaceMapsToConflict(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	registerTestUser(t, auth, "amina")
	user := registerTestUser(t, auth, "fatima")

	// 查重窗口之后邮箱被抢：待保存对象已带着被占用的邮箱，落库撞唯一索引
	user.Email = "amina@example.com"
	first := "Fatima"
	_, err := auth.UpdateProfile(ctx, user, &UpdateProfileRequest{FirstName: &first})
	requireKind(t, err, errs.KindConflict)
	// 撞的是邮箱索引，文案不指认用户名
	assert.Equal(t, msgIdentityTaken, err.Error())
}

func TestChangePasswordWrongCurrentLeavesHash(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	user := registerTestUser(t, auth, "amina")
	originalHash := user.PasswordHash

	err := auth.ChangePassword(ctx, user, "wrongpassword", "newpassword1")
	requireKind(t, err, errs.KindAuth)

	var stored model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, originalHash, stored.PasswordHash)
}

func TestChangePasswordSuccess(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())
	ctx := context.Background()

	user := registerTestUser(t, auth, "amina")

	err := auth.ChangePassword(ctx, user, "password1", "newpassword1")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "amina", "newpassword1")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "amina", "password1")
	requireKind(t, err, errs.KindAuth)
}

func TestChangePasswordTooShort(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, newTestConfig())

	user := registerTestUser(t, auth, "amina")

	err := auth.ChangePassword(context.Background(), user, "password1", "short")
	requireKind(t, err, errs.KindValidation)
}
