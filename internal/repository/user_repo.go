package repository

import (
	"context"
	"errors"
	"time"

	"islamicapp/internal/model"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("用户不存在")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(user).Error
}

// GetByPublicID 按对外标识查用户，令牌鉴权用
func (r *UserRepository) GetByPublicID(ctx context.Context, publicID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByIdentifier 登录标识可以是用户名也可以是邮箱
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier, emailLower string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, emailLower).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UsernameExists 查用户名是否被别人占用，excludeID 为 0 时查所有用户
func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

// EmailExists 查邮箱是否被别人占用，入参须先转小写
func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// StampLastLogin 每次认证成功后刷新最近登录时间
// 注册时传事务句柄，和建号同一个事务提交
func (r *UserRepository) StampLastLogin(ctx context.Context, tx *gorm.DB, user *model.User) error {
	if tx == nil {
		tx = r.db
	}
	now := time.Now()
	err := tx.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("last_login_at", now).Error
	if err != nil {
		return err
	}
	user.LastLoginAt = &now
	return nil
}
