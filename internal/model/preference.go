package model

import (
	"encoding/json"
	"time"
)

// UserPreference 用户偏好设置表，和用户一对一
type UserPreference struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID              int64           `gorm:"uniqueIndex;not null" json:"-"`
	Theme               string          `gorm:"type:varchar(20);not null" json:"theme"`
	DailyGoal           int             `gorm:"not null" json:"daily_goal"`
	SoundEnabled        bool            `gorm:"not null" json:"sound_enabled"`
	PrayerNotifications json.RawMessage `gorm:"type:json" json:"prayer_notifications"`
	LanguagePreference  string          `gorm:"type:varchar(10);not null" json:"language_preference"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

// DefaultPreference 注册或首次访问时写入的默认偏好
func DefaultPreference(userID int64) *UserPreference {
	return &UserPreference{
		UserID:              userID,
		Theme:               "light",
		DailyGoal:           100,
		SoundEnabled:        true,
		PrayerNotifications: json.RawMessage("{}"),
		LanguagePreference:  "ar",
	}
}
