package handler

import (
	"islamicapp/internal/model"
	"islamicapp/internal/service"
	"islamicapp/pkg/errs"
	"islamicapp/pkg/response"

	"github.com/gin-gonic/gin"
)

// currentUser 取鉴权中间件放进来的用户
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(contextUserKey).(*model.User)
}

// Register 注册
// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("البيانات مطلوبة"))
		return
	}

	user, tokens, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "تم إنشاء الحساب بنجاح",
		"user":    user,
		"tokens":  tokens,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 登录，username 字段同时接受用户名和邮箱
// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("البيانات مطلوبة"))
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "تم تسجيل الدخول بنجاح",
		"user":    user,
		"tokens":  tokens,
	})
}

// Refresh 用刷新令牌换新的访问令牌
// POST /api/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	tokenString, ok := bearerToken(c)
	if !ok {
		response.Error(c, errs.Auth("الرمز المميز مفقود"))
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), tokenString)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"access_token": access})
}

// GetProfile 查询账号资料
// GET /api/auth/profile
func (h *Handler) GetProfile(c *gin.Context) {
	response.Success(c, gin.H{"user": currentUser(c)})
}

// UpdateProfile 更新账号资料，只动请求里带的字段
// PUT /api/auth/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("البيانات مطلوبة"))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "تم تحديث الملف الشخصي بنجاح",
		"user":    user,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword 修改密码
// POST /api/auth/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errs.Validation("البيانات مطلوبة"))
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), currentUser(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "تم تغيير كلمة المرور بنجاح"})
}
