package model

import (
	"time"
)

// UserReadingStats 用户阅读进度表，和用户一对一
type UserReadingStats struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             int64      `gorm:"uniqueIndex;not null" json:"-"`
	QuranVersesRead    int        `gorm:"not null;default:0" json:"quran_verses_read"`
	HadithsRead        int        `gorm:"not null;default:0" json:"hadiths_read"`
	DailyReadingStreak int        `gorm:"not null;default:0" json:"daily_reading_streak"`
	TotalReadingDays   int        `gorm:"not null;default:0" json:"total_reading_days"`
	LastReadingDate    *time.Time `json:"last_reading_date"`
	FavoriteReciter    string     `gorm:"type:varchar(50);not null" json:"favorite_reciter"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (UserReadingStats) TableName() string {
	return "user_reading_stats"
}

// DefaultReadingStats 注册或首次访问时写入的默认阅读进度
func DefaultReadingStats(userID int64) *UserReadingStats {
	return &UserReadingStats{
		UserID:          userID,
		FavoriteReciter: "ar.alafasy",
	}
}
