package utils

import (
	"net/http"

	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/gin-gonic/gin"
)

// ContextUserIDKey 认证中间件写入 gin 上下文的键
const ContextUserIDKey = "userID"

// GetUserIDFromContext 从 Gin 上下文中获取并验证用户ID
// 如果获取失败或类型不正确，会中止请求并返回错误
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		xerr.AbortWithError(c, http.StatusUnauthorized, xerr.UnauthorizedCode, "User ID not found in context")
		return "", false
	}
	currentUserID, ok := userID.(string)
	if !ok || currentUserID == "" {
		xerr.AbortWithError(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "Invalid user ID type in context")
		return "", false
	}
	return currentUserID, true
}
