package repository

import (
	"context"
	"errors"

	"islamicapp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadingStatsRepository struct {
	db *gorm.DB
}

func NewReadingStatsRepository(db *gorm.DB) *ReadingStatsRepository {
	return &ReadingStatsRepository{db: db}
}

func (r *ReadingStatsRepository) Create(ctx context.Context, tx *gorm.DB, stats *model.UserReadingStats) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(stats).Error
}

// GetOrCreate 取阅读进度，没有就写入默认值再读回来
func (r *ReadingStatsRepository) GetOrCreate(ctx context.Context, userID int64) (*model.UserReadingStats, error) {
	stats, err := r.getByUserID(ctx, userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model.DefaultReadingStats(userID)).Error
	if err != nil {
		return nil, err
	}

	return r.getByUserID(ctx, userID)
}

func (r *ReadingStatsRepository) Save(ctx context.Context, stats *model.UserReadingStats) error {
	return r.db.WithContext(ctx).Save(stats).Error
}

func (r *ReadingStatsRepository) getByUserID(ctx context.Context, userID int64) (*model.UserReadingStats, error) {
	var stats model.UserReadingStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
