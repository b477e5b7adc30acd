package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"islamicapp/internal/model"
	"islamicapp/internal/repository"
	"islamicapp/pkg/errs"

	"gorm.io/gorm"
)

const (
	msgPhraseTextRequired = "Phrase text is required"
	msgPhraseNotFound     = "Phrase not found"
	msgInvalidReadingDate = "Invalid date format, expected YYYY-MM-DD"
)

// parseDate 解析 YYYY-MM-DD，空串清空该字段
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

type UserService struct {
	db           *gorm.DB
	phraseRepo   *repository.PhraseRepository
	prefRepo     *repository.PreferenceRepository
	locationRepo *repository.LocationRepository
	statsRepo    *repository.ReadingStatsRepository
	tasbehRepo   *repository.TasbehRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:           db,
		phraseRepo:   repository.NewPhraseRepository(db),
		prefRepo:     repository.NewPreferenceRepository(db),
		locationRepo: repository.NewLocationRepository(db),
		statsRepo:    repository.NewReadingStatsRepository(db),
		tasbehRepo:   repository.NewTasbehRepository(db),
	}
}

// ============================================================
// 自定义短语
// ============================================================

// AddPhrase 新增自定义短语，正文不能为空
func (s *UserService) AddPhrase(ctx context.Context, user *model.User, text string) (*model.UserPhrase, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation(msgPhraseTextRequired)
	}

	phrase := &model.UserPhrase{UserID: user.ID, Phrase: text}
	if err := s.phraseRepo.Create(ctx, phrase); err != nil {
		return nil, errs.Internal(err)
	}
	return phrase, nil
}

// ListPhrases 按创建时间倒序列出自定义短语
func (s *UserService) ListPhrases(ctx context.Context, user *model.User) ([]model.UserPhrase, error) {
	phrases, err := s.phraseRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return phrases, nil
}

// DeletePhrase 删除自己的短语，删别人的或不存在的报 404
func (s *UserService) DeletePhrase(ctx context.Context, user *model.User, phraseID int64) error {
	err := s.phraseRepo.DeleteOwned(ctx, user.ID, phraseID)
	if err != nil {
		if errors.Is(err, repository.ErrPhraseNotFound) {
			return errs.NotFound(msgPhraseNotFound)
		}
		return errs.Internal(err)
	}
	return nil
}

// ============================================================
// 偏好设置
// ============================================================

func (s *UserService) GetPreferences(ctx context.Context, user *model.User) (*model.UserPreference, error) {
	pref, err := s.prefRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return pref, nil
}

type UpdatePreferencesRequest struct {
	Theme               *string         `json:"theme"`
	DailyGoal           *int            `json:"daily_goal"`
	SoundEnabled        *bool           `json:"sound_enabled"`
	PrayerNotifications json.RawMessage `json:"prayer_notifications"`
	LanguagePreference  *string         `json:"language_preference"`
}

// UpdatePreferences 部分更新，只动请求里带的字段
func (s *UserService) UpdatePreferences(ctx context.Context, user *model.User, req *UpdatePreferencesRequest) (*model.UserPreference, error) {
	pref, err := s.prefRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	if req.Theme != nil {
		pref.Theme = *req.Theme
	}
	if req.DailyGoal != nil {
		pref.DailyGoal = *req.DailyGoal
	}
	if req.SoundEnabled != nil {
		pref.SoundEnabled = *req.SoundEnabled
	}
	if req.PrayerNotifications != nil {
		pref.PrayerNotifications = req.PrayerNotifications
	}
	if req.LanguagePreference != nil {
		pref.LanguagePreference = *req.LanguagePreference
	}

	if err := s.prefRepo.Save(ctx, pref); err != nil {
		return nil, errs.Internal(err)
	}
	return pref, nil
}

// ============================================================
// 地理位置
// ============================================================

func (s *UserService) GetLocation(ctx context.Context, user *model.User) (*model.UserLocation, error) {
	loc, err := s.locationRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return loc, nil
}

type UpdateLocationRequest struct {
	City      *string  `json:"city"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timezone  *string  `json:"timezone"`
}

// UpdateLocation 部分更新，只动请求里带的字段
func (s *UserService) UpdateLocation(ctx context.Context, user *model.User, req *UpdateLocationRequest) (*model.UserLocation, error) {
	loc, err := s.locationRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	if req.City != nil {
		loc.City = *req.City
	}
	if req.Country != nil {
		loc.Country = *req.Country
	}
	if req.Latitude != nil {
		loc.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = req.Longitude
	}
	if req.Timezone != nil {
		loc.Timezone = *req.Timezone
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, errs.Internal(err)
	}
	return loc, nil
}

// ============================================================
// 阅读进度
// ============================================================

func (s *UserService) GetReadingStats(ctx context.Context, user *model.User) (*model.UserReadingStats, error) {
	stats, err := s.statsRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return stats, nil
}

type UpdateReadingStatsRequest struct {
	QuranVersesRead    *int    `json:"quran_verses_read"`
	HadithsRead        *int    `json:"hadiths_read"`
	DailyReadingStreak *int    `json:"daily_reading_streak"`
	TotalReadingDays   *int    `json:"total_reading_days"`
	LastReadingDate    *string `json:"last_reading_date"` // YYYY-MM-DD
	FavoriteReciter    *string `json:"favorite_reciter"`
}

// UpdateReadingStats 部分更新，只动请求里带的字段
func (s *UserService) UpdateReadingStats(ctx context.Context, user *model.User, req *UpdateReadingStatsRequest) (*model.UserReadingStats, error) {
	stats, err := s.statsRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	if req.QuranVersesRead != nil {
		stats.QuranVersesRead = *req.QuranVersesRead
	}
	if req.HadithsRead != nil {
		stats.HadithsRead = *req.HadithsRead
	}
	if req.DailyReadingStreak != nil {
		stats.DailyReadingStreak = *req.DailyReadingStreak
	}
	if req.TotalReadingDays != nil {
		stats.TotalReadingDays = *req.TotalReadingDays
	}
	if req.LastReadingDate != nil {
		parsed, err := parseDate(*req.LastReadingDate)
		if err != nil {
			return nil, errs.Validation(msgInvalidReadingDate)
		}
		stats.LastReadingDate = parsed
	}
	if req.FavoriteReciter != nil {
		stats.FavoriteReciter = *req.FavoriteReciter
	}

	if err := s.statsRepo.Save(ctx, stats); err != nil {
		return nil, errs.Internal(err)
	}
	return stats, nil
}

// ============================================================
// 汇总视图
// ============================================================

// FullProfile 个人主页：用户加三张附属表
type FullProfile struct {
	User         *model.User             `json:"user"`
	Preferences  *model.UserPreference   `json:"preferences"`
	Location     *model.UserLocation     `json:"location"`
	ReadingStats *model.UserReadingStats `json:"reading_stats"`
}

func (s *UserService) Profile(ctx context.Context, user *model.User) (*FullProfile, error) {
	pref, err := s.prefRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	loc, err := s.locationRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	stats, err := s.statsRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	return &FullProfile{
		User:         user,
		Preferences:  pref,
		Location:     loc,
		ReadingStats: stats,
	}, nil
}

// DashboardStatistics 仪表盘统计块
type DashboardStatistics struct {
	TotalPhrases       int64 `json:"total_phrases"`
	TotalDhikr         int64 `json:"total_dhikr"`
	TotalTasbehPhrases int   `json:"total_tasbeh_phrases"`
	QuranVersesRead    int   `json:"quran_verses_read"`
	ReadingStreak      int   `json:"reading_streak"`
}

// Dashboard 仪表盘数据
type Dashboard struct {
	User          *model.User         `json:"user"`
	Statistics    DashboardStatistics `json:"statistics"`
	RecentPhrases []model.UserPhrase  `json:"recent_phrases"`
}

func (s *UserService) Dashboard(ctx context.Context, user *model.User) (*Dashboard, error) {
	phraseCount, err := s.phraseRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	tasbehRecords, err := s.tasbehRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	var totalDhikr int64
	for _, record := range tasbehRecords {
		totalDhikr += record.Count
	}

	stats, err := s.statsRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	recentPhrases, err := s.phraseRepo.ListRecent(ctx, user.ID, 5)
	if err != nil {
		return nil, errs.Internal(err)
	}

	return &Dashboard{
		User: user,
		Statistics: DashboardStatistics{
			TotalPhrases:       phraseCount,
			TotalDhikr:         totalDhikr,
			TotalTasbehPhrases: len(tasbehRecords),
			QuranVersesRead:    stats.QuranVersesRead,
			ReadingStreak:      stats.DailyReadingStreak,
		},
		RecentPhrases: recentPhrases,
	}, nil
}
