package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"islamicapp/internal/config"
	"islamicapp/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(quranURL, prayerURL string) *ContentService {
	return NewContentService(&config.ContentConfig{
		QuranBaseURL:    quranURL,
		PrayerBaseURL:   prayerURL,
		TimeoutSeconds:  1,
		CacheTTLMinutes: 1,
	}, nil)
}

func TestSurahsProxiesUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/surah", r.URL.Path)
		w.Write([]byte(`{"code":200,"data":[{"number":1}]}`))
	}))
	defer upstream.Close()

	content := newContentService(upstream.URL, upstream.URL)

	body, err := content.Surahs(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":200,"data":[{"number":1}]}`, string(body))
}

func TestSurahsFallsBackWhenUpstreamDown(t *testing.T) {
	// 指向一个已关闭的地址
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	content := newContentService(upstream.URL, upstream.URL)

	body, err := content.Surahs(context.Background())
	require.NoError(t, err)
	assert.True(t, json.Valid(body))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.NotEmpty(t, parsed["data"])
}

func TestSurahsFallsBackOnUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	content := newContentService(upstream.URL, upstream.URL)

	body, err := content.Surahs(context.Background())
	require.NoError(t, err)
	assert.True(t, json.Valid(body))
}

func TestSurahValidatesNumber(t *testing.T) {
	content := newContentService("http://127.0.0.1:0", "http://127.0.0.1:0")

	for _, number := range []int{0, -1, 115} {
		_, err := content.Surah(context.Background(), number)
		requireKind(t, err, errs.KindValidation)
	}
}

func TestSurahWrapsAudioURLs(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/surah/2/ar.alafasy", r.URL.Path)
		w.Write([]byte(`{"number":2}`))
	}))
	defer upstream.Close()

	content := newContentService(upstream.URL, upstream.URL)

	body, err := content.Surah(context.Background(), 2)
	require.NoError(t, err)

	var parsed struct {
		Surah     json.RawMessage   `json:"surah"`
		AudioURLs map[string]string `json:"audio_urls"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.JSONEq(t, `{"number":2}`, string(parsed.Surah))
	// 章节号补齐三位
	assert.Equal(t, "https://server11.mp3quran.net/sds/002.mp3", parsed.AudioURLs["sudais"])
}

func TestPrayerTimesRequiresCity(t *testing.T) {
	content := newContentService("http://127.0.0.1:0", "http://127.0.0.1:0")

	_, err := content.PrayerTimes(context.Background(), "   ", "Egypt")
	requireKind(t, err, errs.KindValidation)
}

func TestPrayerTimesQueryShape(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timingsByCity", r.URL.Path)
		assert.Equal(t, "Cairo", r.URL.Query().Get("city"))
		assert.Equal(t, "Egypt", r.URL.Query().Get("country"))
		assert.Equal(t, "4", r.URL.Query().Get("method"))
		w.Write([]byte(`{"code":200}`))
	}))
	defer upstream.Close()

	content := newContentService(upstream.URL, upstream.URL)

	body, err := content.PrayerTimes(context.Background(), " Cairo ", "Egypt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":200}`, string(body))
}
