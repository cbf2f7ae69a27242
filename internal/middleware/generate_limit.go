package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 生成限流中间件 ====================

// GenerationCooldown 按 调用方 + 用例 维度限流，须放在 WithSession 之后
//
// 使用示例:
//
//	router.POST("/api/generate/:use_case",
//	    middleware.WithSession(resolver, logger),
//	    middleware.GenerationCooldown(limiter, 5*time.Second),
//	    controller.Generate,
//	)
//
// interval 为 0 时不限流
func GenerationCooldown(limiter *CooldownLimiter, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := GetSession(c).OwnerKey()
		if interval <= 0 || owner == "" {
			c.Next()
			return
		}

		useCase := c.Param("use_case")
		key := GenerationKey(owner, useCase)

		result := limiter.Check(key, interval)
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": retryAfter,
					"use_case":    useCase,
				},
			})
			c.Abort()
			return
		}

		c.Next()

		// 请求被拒绝（入参错误、未授权）时不占用冷却
		if status := c.Writer.Status(); status == http.StatusBadRequest ||
			status == http.StatusUnauthorized || status == http.StatusPaymentRequired {
			limiter.Reset(key)
		}
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	if seconds < 60 {
		return fmt.Sprintf("请求过于频繁，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60

	if remainingSeconds == 0 {
		return fmt.Sprintf("请求过于频繁，请 %d 分钟后重试", minutes)
	}

	return fmt.Sprintf("请求过于频繁，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
