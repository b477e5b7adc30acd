package response

import (
	"errors"
	"log"
	"net/http"

	"islamicapp/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Success 输出 200 和业务数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 输出 201 和业务数据
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 按错误分类输出对应状态码
// 非业务错误一律按 500 处理，细节只进日志
func Error(c *gin.Context, err error) {
	var appErr *errs.Error
	if !errors.As(err, &appErr) {
		appErr = errs.Internal(err)
	}

	if appErr.Kind == errs.KindInternal {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Unwrap())
	}

	c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
}
