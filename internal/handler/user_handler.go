package handler

import (
	"strconv"

	"islamicapp/internal/service"
	"islamicapp/pkg/errs"
	"islamicapp/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetUserProfile 用户加三张附属表的汇总视图
// GET /api/user/profile
func (h *Handler) GetUserProfile(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// GetUserPhrases 自定义短语列表，按创建时间倒序
// GET /api/user/phrases
func (h *Handler) GetUserPhrases(c *gin.Context) {
	phrases, err := h.userService.ListPhrases(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"phrases": phrases,
		"total":   len(phrases),
	})
}

type addPhraseRequest struct {
	Phrase string `json:"phrase"`
}

// AddUserPhrase 新增自定义短语
// POST /api/user/phrases
func (h *Handler) AddUserPhrase(c *gin.Context) {
	var req addPhraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("Phrase text is required"))
		return
	}

	phrase, err := h.userService.AddPhrase(c.Request.Context(), currentUser(c), req.Phrase)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Phrase added successfully",
		"phrase":  phrase,
	})
}

// DeleteUserPhrase 删除自定义短语
// DELETE /api/user/phrases/:id
func (h *Handler) DeleteUserPhrase(c *gin.Context) {
	phraseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errs.Validation("Invalid phrase id"))
		return
	}

	if err := h.userService.DeletePhrase(c.Request.Context(), currentUser(c), phraseID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Phrase deleted successfully"})
}

// GetPreferences 查询偏好，首次访问落默认值
// GET /api/user/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	pref, err := h.userService.GetPreferences(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"preferences": pref})
}

// UpdatePreferences 更新偏好，只动请求里带的字段
// PUT /api/user/preferences
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var req service.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("البيانات مطلوبة"))
		return
	}

	pref, err := h.userService.UpdatePreferences(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message":     "Preferences updated successfully",
		"preferences": pref,
	})
}

// GetLocation 查询位置，首次访问落空记录
// GET /api/user/location
func (h *Handler) GetLocation(c *gin.Context) {
	loc, err := h.userService.GetLocation(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"location": loc})
}

// UpdateLocation 更新位置，只动请求里带的字段
// PUT /api/user/location
func (h *Handler) UpdateLocation(c *gin.Context) {
	var req service.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("البيانات مطلوبة"))
		return
	}

	loc, err := h.userService.UpdateLocation(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message":  "Location updated successfully",
		"location": loc,
	})
}

// GetReadingStats 查询阅读进度
// GET /api/user/reading-stats
func (h *Handler) GetReadingStats(c *gin.Context) {
	stats, err := h.userService.GetReadingStats(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"reading_stats": stats})
}

// UpdateReadingStats 更新阅读进度，只动请求里带的字段
// PUT /api/user/reading-stats
func (h *Handler) UpdateReadingStats(c *gin.Context) {
	var req service.UpdateReadingStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("البيانات مطلوبة"))
		return
	}

	stats, err := h.userService.UpdateReadingStats(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message":       "Reading stats updated successfully",
		"reading_stats": stats,
	})
}

// GetDashboard 仪表盘汇总
// GET /api/user/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.userService.Dashboard(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dashboard)
}
