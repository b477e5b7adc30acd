package repository

import (
	"context"
	"errors"

	"islamicapp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Create(ctx context.Context, tx *gorm.DB, pref *model.UserPreference) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(pref).Error
}

// GetOrCreate 取用户偏好，没有就写入默认值再读回来
// 冲突时 DoNothing，并发首次访问也只会留下一行
func (r *PreferenceRepository) GetOrCreate(ctx context.Context, userID int64) (*model.UserPreference, error) {
	pref, err := r.getByUserID(ctx, userID)
	if err == nil {
		return pref, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model.DefaultPreference(userID)).Error
	if err != nil {
		return nil, err
	}

	return r.getByUserID(ctx, userID)
}

func (r *PreferenceRepository) Save(ctx context.Context, pref *model.UserPreference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}

func (r *PreferenceRepository) getByUserID(ctx context.Context, userID int64) (*model.UserPreference, error) {
	var pref model.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}
