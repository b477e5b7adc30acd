package service

import (
	"context"
	"time"

	"islamicapp/internal/model"
	"islamicapp/internal/repository"
	"islamicapp/pkg/errs"

	"gorm.io/gorm"
)

// Tally 接口的用户侧文案沿用原服务的英文提示
const (
	msgInvalidPhrase = "Invalid phrase"
	msgInvalidAmount = "Amount must be a positive integer"
)

// 最近活跃窗口：按自然天差计算，不是滚动 168 小时
const recentActivityDays = 7

type TasbehService struct {
	db         *gorm.DB
	tasbehRepo *repository.TasbehRepository
}

func NewTasbehService(db *gorm.DB) *TasbehService {
	return &TasbehService{
		db:         db,
		tasbehRepo: repository.NewTasbehRepository(db),
	}
}

// Increment 短语计数累加
// 行不存在时以 amount 作为初始计数建行，存在时原子累加
func (s *TasbehService) Increment(ctx context.Context, user *model.User, phrase string, amount int64) (int64, error) {
	if !model.IsTasbehPhrase(phrase) {
		return 0, errs.Validation(msgInvalidPhrase)
	}
	if amount < 1 {
		return 0, errs.Validation(msgInvalidAmount)
	}

	if err := s.tasbehRepo.IncrementUpsert(ctx, user.ID, phrase, amount); err != nil {
		return 0, errs.Internal(err)
	}

	record, err := s.tasbehRepo.Get(ctx, user.ID, phrase)
	if err != nil {
		return 0, errs.Internal(err)
	}
	if record == nil {
		// 刚写入的行被并发重置删掉了，按语义报当前计数 0
		return 0, nil
	}
	return record.Count, nil
}

// Reset 重置短语计数，直接删行
// 行本来就不存在也算成功，保持幂等
func (s *TasbehService) Reset(ctx context.Context, user *model.User, phrase string) error {
	if !model.IsTasbehPhrase(phrase) {
		return errs.Validation(msgInvalidPhrase)
	}
	if err := s.tasbehRepo.DeleteByPhrase(ctx, user.ID, phrase); err != nil {
		return errs.Internal(err)
	}
	return nil
}

// PhraseCount 列表里的一项，没有记录时 count 为 0、时间为 null
type PhraseCount struct {
	Phrase      string     `json:"phrase"`
	Count       int64      `json:"count"`
	LastUpdated *time.Time `json:"last_updated"`
}

// ListWithCounts 按固定顺序返回全部短语和各自计数，外加总数
// 返回条数恒等于短语集合大小，新用户也一样
func (s *TasbehService) ListWithCounts(ctx context.Context, user *model.User) ([]PhraseCount, int64, error) {
	records, err := s.tasbehRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, 0, errs.Internal(err)
	}

	byPhrase := make(map[string]model.TasbehCount, len(records))
	for _, record := range records {
		byPhrase[record.Phrase] = record
	}

	result := make([]PhraseCount, 0, len(model.TasbehPhrases))
	var total int64
	for _, phrase := range model.TasbehPhrases {
		item := PhraseCount{Phrase: phrase}
		if record, ok := byPhrase[phrase]; ok {
			lastUpdated := record.LastUpdated
			item.Count = record.Count
			item.LastUpdated = &lastUpdated
		}
		total += item.Count
		result = append(result, item)
	}
	return result, total, nil
}

// MostRecited 计数最高的短语
type MostRecited struct {
	Phrase string `json:"phrase"`
	Count  int64  `json:"count"`
}

// TasbehStatistics 聚合统计
type TasbehStatistics struct {
	TotalDhikr     int64               `json:"total_dhikr"`
	TotalPhrases   int                 `json:"total_phrases"`
	MostRecited    *MostRecited        `json:"most_recited"`
	RecentActivity []model.TasbehCount `json:"recent_activity"`
}

// Statistics 统计总计数、活跃短语数、计数最高短语和近七天动态
// 计数相同的按短语集合顺序取靠前的，保证结果确定
func (s *TasbehService) Statistics(ctx context.Context, user *model.User) (*TasbehStatistics, error) {
	records, err := s.tasbehRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	byPhrase := make(map[string]model.TasbehCount, len(records))
	var total int64
	for _, record := range records {
		byPhrase[record.Phrase] = record
		total += record.Count
	}

	stats := &TasbehStatistics{
		TotalDhikr:     total,
		TotalPhrases:   len(records),
		RecentActivity: []model.TasbehCount{},
	}

	now := time.Now()
	for _, phrase := range model.TasbehPhrases {
		record, ok := byPhrase[phrase]
		if !ok {
			continue
		}
		if stats.MostRecited == nil || record.Count > stats.MostRecited.Count {
			stats.MostRecited = &MostRecited{Phrase: record.Phrase, Count: record.Count}
		}
		if daysBetween(record.LastUpdated, now) <= recentActivityDays {
			stats.RecentActivity = append(stats.RecentActivity, record)
		}
	}
	return stats, nil
}

// TasbehExport 全量导出
type TasbehExport struct {
	User         string              `json:"user"`
	ExportDate   time.Time           `json:"export_date"`
	TasbehCounts []model.TasbehCount `json:"tasbeh_counts"`
	TotalDhikr   int64               `json:"total_dhikr"`
}

// Export 导出用户全部计数，只读不落任何写
func (s *TasbehService) Export(ctx context.Context, user *model.User) (*TasbehExport, error) {
	records, err := s.tasbehRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	var total int64
	for _, record := range records {
		total += record.Count
	}

	return &TasbehExport{
		User:         user.Username,
		ExportDate:   time.Now().UTC(),
		TasbehCounts: records,
		TotalDhikr:   total,
	}, nil
}

// daysBetween 整天差，不足一天按 0 算
func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
