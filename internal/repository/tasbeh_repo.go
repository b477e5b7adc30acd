package repository

import (
	"context"
	"errors"
	"time"

	"islamicapp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TasbehRepository struct {
	db *gorm.DB
}

func NewTasbehRepository(db *gorm.DB) *TasbehRepository {
	return &TasbehRepository{db: db}
}

// IncrementUpsert 原子累加计数
// 单条 INSERT ... ON CONFLICT，没有先读后写，并发累加不丢更新
func (r *TasbehRepository) IncrementUpsert(ctx context.Context, userID int64, phrase string, amount int64) error {
	now := time.Now()
	record := &model.TasbehCount{
		UserID:      userID,
		Phrase:      phrase,
		Count:       amount,
		LastUpdated: now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "phrase"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":        gorm.Expr("count + ?", amount),
				"last_updated": now,
			}),
		}).
		Create(record).Error
}

// Get 查单条计数，没有记录返回 nil
func (r *TasbehRepository) Get(ctx context.Context, userID int64, phrase string) (*model.TasbehCount, error) {
	var record model.TasbehCount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND phrase = ?", userID, phrase).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *TasbehRepository) ListByUser(ctx context.Context, userID int64) ([]model.TasbehCount, error) {
	var records []model.TasbehCount
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error
	return records, err
}

// DeleteByPhrase 重置即删行，行不存在也算成功
func (r *TasbehRepository) DeleteByPhrase(ctx context.Context, userID int64, phrase string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND phrase = ?", userID, phrase).
		Delete(&model.TasbehCount{}).Error
}
