package model

import (
	"time"
)

// 性别取值（空字符串表示未填写）
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// IsValidGender 校验性别取值是否合法
func IsValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale
}

// User 用户表
// 内部自增 ID 仅作存储主键，对外一律使用 public_id（注册时生成，不可变更）
type User struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"-"`
	PublicID       string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"` // 对外暴露的唯一标识
	Username       string     `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"` // 统一转小写存储
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName      string     `gorm:"type:varchar(50)" json:"first_name"`
	LastName       string     `gorm:"type:varchar(50)" json:"last_name"`
	Phone          string     `gorm:"type:varchar(20)" json:"phone"`
	Country        string     `gorm:"type:varchar(50)" json:"country"`
	City           string     `gorm:"type:varchar(50)" json:"city"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         string     `gorm:"type:varchar(10)" json:"gender"`
	ProfilePicture string     `gorm:"type:varchar(255)" json:"profile_picture"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	EmailVerified  bool       `gorm:"not null;default:false" json:"email_verified"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
