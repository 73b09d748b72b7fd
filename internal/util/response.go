package util

import (
	"hiphop_roadmap_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构，code 与 HTTP 状态码一致
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", data)
}

func SuccessMessage(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, data interface{}) {
	Respond(c, http.StatusCreated, "created", data)
}

func Error(c *gin.Context, status int, message string) {
	Respond(c, status, message, nil)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Conflict 唯一约束冲突，如邮箱、用户名或 skillId 已存在
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func NotFoundMessage(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// LogInternalError 记录原始错误，客户端只看到通用 500 提示
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}
