package model

import (
	"time"
)

// UserLocation 用户地理位置表，和用户一对一
// 经纬度用指针区分「未填写」和数值 0
type UserLocation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex;not null" json:"-"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	Country   string    `gorm:"type:varchar(100)" json:"country"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Timezone  string    `gorm:"type:varchar(50)" json:"timezone"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (UserLocation) TableName() string {
	return "user_locations"
}

// DefaultLocation 首次访问时写入的空位置记录
func DefaultLocation(userID int64) *UserLocation {
	return &UserLocation{UserID: userID}
}
