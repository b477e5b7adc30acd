package model

import (
	"time"
)

// TasbehPhrases 赞珠计数支持的固定短语集合
// 全局唯一定义，校验和枚举都引用这里，顺序即展示顺序
var TasbehPhrases = []string{
	"سبحان الله",               // SubhanAllah
	"الحمد لله",                // Alhamdulillah
	"الله أكبر",                // Allahu Akbar
	"لا إله إلا الله",          // La ilaha illa Allah
	"اللهم صل على سيدنا محمد",  // Allahumma salli ala sayyidina Muhammad
	"أستغفر الله",              // Astaghfirullah
	"لا حول ولا قوة إلا بالله", // La hawla wa la quwwata illa billah
	"بسم الله الرحمن الرحيم",   // Bismillah ar-Rahman ar-Raheem
}

// IsTasbehPhrase 判断短语是否在固定集合内（逐字节精确匹配，不做归一化）
func IsTasbehPhrase(phrase string) bool {
	for _, p := range TasbehPhrases {
		if p == phrase {
			return true
		}
	}
	return false
}

// TasbehCount 赞珠计数表
// (user_id, phrase) 全局唯一，一个用户对每个短语至多一行
// 没有行即视为计数 0；重置直接删行而不是清零
type TasbehCount struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID      int64     `gorm:"uniqueIndex:uk_user_phrase;not null" json:"-"`
	Phrase      string    `gorm:"type:varchar(191);uniqueIndex:uk_user_phrase;not null" json:"phrase"`
	Count       int64     `gorm:"not null;default:0" json:"count"`
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (TasbehCount) TableName() string {
	return "tasbeh_counts"
}
