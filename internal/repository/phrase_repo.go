package repository

import (
	"context"
	"errors"

	"islamicapp/internal/model"

	"gorm.io/gorm"
)

var ErrPhraseNotFound = errors.New("短语不存在")

type PhraseRepository struct {
	db *gorm.DB
}

func NewPhraseRepository(db *gorm.DB) *PhraseRepository {
	return &PhraseRepository{db: db}
}

func (r *PhraseRepository) Create(ctx context.Context, phrase *model.UserPhrase) error {
	return r.db.WithContext(ctx).Create(phrase).Error
}

// ListByUser 按创建时间倒序，同秒内按 ID 倒序保证顺序稳定
func (r *PhraseRepository) ListByUser(ctx context.Context, userID int64) ([]model.UserPhrase, error) {
	var phrases []model.UserPhrase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&phrases).Error
	return phrases, err
}

// ListRecent 最近 n 条，仪表盘用
func (r *PhraseRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]model.UserPhrase, error) {
	var phrases []model.UserPhrase
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&phrases).Error
	return phrases, err
}

func (r *PhraseRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserPhrase{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DeleteOwned 只删属于该用户的短语，防止越权删除
func (r *PhraseRepository) DeleteOwned(ctx context.Context, userID, phraseID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", phraseID, userID).
		Delete(&model.UserPhrase{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhraseNotFound
	}
	return nil
}
