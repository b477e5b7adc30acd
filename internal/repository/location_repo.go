package repository

import (
	"context"
	"errors"

	"islamicapp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// GetOrCreate 取用户位置，没有就建一条空记录
func (r *LocationRepository) GetOrCreate(ctx context.Context, userID int64) (*model.UserLocation, error) {
	loc, err := r.getByUserID(ctx, userID)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model.DefaultLocation(userID)).Error
	if err != nil {
		return nil, err
	}

	return r.getByUserID(ctx, userID)
}

func (r *LocationRepository) Save(ctx context.Context, loc *model.UserLocation) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *LocationRepository) getByUserID(ctx context.Context, userID int64) (*model.UserLocation, error) {
	var loc model.UserLocation
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
