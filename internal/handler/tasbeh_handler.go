package handler

import (
	"islamicapp/pkg/errs"
	"islamicapp/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetPhrases 固定短语集合和各自计数
// GET /api/tasbeh/phrases
func (h *Handler) GetPhrases(c *gin.Context) {
	phrases, total, err := h.tasbehService.ListWithCounts(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"phrases":     phrases,
		"total_dhikr": total,
	})
}

type incrementRequest struct {
	Phrase string `json:"phrase"`
	Amount *int64 `json:"amount"` // 缺省按 1 算
}

// IncrementCount 短语计数累加
// POST /api/tasbeh/count
func (h *Handler) IncrementCount(c *gin.Context) {
	var req incrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// amount 传了小数或字符串也会走到这里
		response.Error(c, errs.Validation("Amount must be a positive integer"))
		return
	}

	amount := int64(1)
	if req.Amount != nil {
		amount = *req.Amount
	}

	count, err := h.tasbehService.Increment(c.Request.Context(), currentUser(c), req.Phrase, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "Count updated successfully",
		"phrase":  req.Phrase,
		"count":   count,
	})
}

type resetRequest struct {
	Phrase string `json:"phrase"`
}

// ResetCount 重置短语计数
// POST /api/tasbeh/reset
func (h *Handler) ResetCount(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("Invalid phrase"))
		return
	}

	if err := h.tasbehService.Reset(c.Request.Context(), currentUser(c), req.Phrase); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "Count reset successfully",
		"phrase":  req.Phrase,
		"count":   0,
	})
}

// GetStatistics 聚合统计
// GET /api/tasbeh/statistics
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.tasbehService.Statistics(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// ExportData 全量导出
// GET /api/tasbeh/export
func (h *Handler) ExportData(c *gin.Context) {
	export, err := h.tasbehService.Export(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, export)
}
