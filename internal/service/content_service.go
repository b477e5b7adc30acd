package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"islamicapp/internal/config"
	"islamicapp/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const (
	msgInvalidSurah = "Surah number must be between 1 and 114"
	msgCityRequired = "City is required"
)

// ContentService 第三方伊斯兰内容代理
// 外部接口挂了就退回内置静态数据，绝不让请求一直阻塞
type ContentService struct {
	cfg      *config.ContentConfig
	rdb      *redis.Client
	client   *http.Client
	cacheTTL time.Duration
}

func NewContentService(cfg *config.ContentConfig, rdb *redis.Client) *ContentService {
	return &ContentService{
		cfg:      cfg,
		rdb:      rdb,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cacheTTL: time.Duration(cfg.CacheTTLMinutes) * time.Minute,
	}
}

// Surahs 全部章节列表
func (s *ContentService) Surahs(ctx context.Context) (json.RawMessage, error) {
	return s.fetchWithCache(ctx, "content:surahs",
		fmt.Sprintf("%s/surah", s.cfg.QuranBaseURL),
		fallbackSurahs)
}

// Surah 单章经文，带各朗诵者的音频地址
func (s *ContentService) Surah(ctx context.Context, number int) (json.RawMessage, error) {
	if number < 1 || number > 114 {
		return nil, errs.Validation(msgInvalidSurah)
	}

	body, err := s.fetchWithCache(ctx, fmt.Sprintf("content:surah:%d", number),
		fmt.Sprintf("%s/surah/%d/ar.alafasy", s.cfg.QuranBaseURL, number),
		fallbackSurahDetail(number))
	if err != nil {
		return nil, err
	}

	// 音频地址在本地拼接，不依赖上游返回
	wrapped, err := json.Marshal(map[string]interface{}{
		"surah":      json.RawMessage(body),
		"audio_urls": AudioURLs(number),
	})
	if err != nil {
		return nil, errs.Internal(err)
	}
	return wrapped, nil
}

// AudioURLs 各朗诵者在 mp3quran 上的音频地址
func AudioURLs(number int) map[string]string {
	formatted := fmt.Sprintf("%03d", number)
	return map[string]string{
		"abdulbasit": fmt.Sprintf("https://server8.mp3quran.net/afs/%s.mp3", formatted),
		"maher":      fmt.Sprintf("https://server12.mp3quran.net/maher/%s.mp3", formatted),
		"sudais":     fmt.Sprintf("https://server11.mp3quran.net/sds/%s.mp3", formatted),
		"mishary":    fmt.Sprintf("https://server13.mp3quran.net/maher/%s.mp3", formatted),
	}
}

// PrayerTimes 按城市查礼拜时间，计算方法固定用 Umm Al-Qura
func (s *ContentService) PrayerTimes(ctx context.Context, city, country string) (json.RawMessage, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errs.Validation(msgCityRequired)
	}

	query := url.Values{}
	query.Set("city", city)
	query.Set("country", strings.TrimSpace(country))
	query.Set("method", "4")

	return s.fetchWithCache(ctx,
		fmt.Sprintf("content:prayer:%s:%s", strings.ToLower(city), strings.ToLower(country)),
		fmt.Sprintf("%s/timingsByCity?%s", s.cfg.PrayerBaseURL, query.Encode()),
		fallbackPrayerTimes)
}

// fetchWithCache 先查缓存，未命中回源并写缓存，回源失败退回静态数据
// Redis 故障按未命中处理，不影响主流程
func (s *ContentService) fetchWithCache(ctx context.Context, cacheKey, upstreamURL string, fallback json.RawMessage) (json.RawMessage, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	body, err := s.fetchUpstream(ctx, upstreamURL)
	if err != nil {
		log.Printf("内容接口回源失败，使用静态数据: %s: %v", upstreamURL, err)
		return fallback, nil
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey, body, s.cacheTTL).Err(); err != nil {
			log.Printf("写内容缓存失败: %s: %v", cacheKey, err)
		}
	}
	return body, nil
}

func (s *ContentService) fetchUpstream(ctx context.Context, upstreamURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, upstreamURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("上游返回 %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("上游返回的不是合法 JSON")
	}
	return body, nil
}
