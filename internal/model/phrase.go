package model

import (
	"time"
)

// UserPhrase 用户自定义短语（自由文本笔记）
// 不做唯一性约束，列表按创建时间倒序返回
type UserPhrase struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"-"`
	Phrase    string    `gorm:"type:text;not null" json:"phrase"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (UserPhrase) TableName() string {
	return "user_phrases"
}
