package api

import (
	"errors"
	"net/http"

	"lungcare/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应：对外只有一个 error 字符串，不暴露结构化错误码
type ErrorResponse struct {
	Error string `json:"error"`
}

// Fail 错误响应
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// FailWithError 按错误分类映射状态码，生产模式下隐藏内部细节
func FailWithError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrInput) {
		status = http.StatusBadRequest
	}
	Fail(c, status, SafeErrorMessage(err, fallback))
}
