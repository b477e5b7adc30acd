package handler

import (
	"net/http"
	"strconv"

	"islamicapp/pkg/errs"
	"islamicapp/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetSurahs 章节列表
// GET /api/content/quran/surahs
func (h *Handler) GetSurahs(c *gin.Context) {
	body, err := h.contentService.Surahs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetSurah 单章经文和音频地址
// GET /api/content/quran/surah/:number
func (h *Handler) GetSurah(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		response.Error(c, errs.Validation("Surah number must be between 1 and 114"))
		return
	}

	body, err := h.contentService.Surah(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetPrayerTimes 按城市查礼拜时间
// GET /api/content/prayer-times?city=xxx&country=xxx
func (h *Handler) GetPrayerTimes(c *gin.Context) {
	body, err := h.contentService.PrayerTimes(c.Request.Context(), c.Query("city"), c.Query("country"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
