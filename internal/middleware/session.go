package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/session"
)

// HeaderClientID 匿名客户端标识
const HeaderClientID = "X-Client-ID"

const contextKeySession = "session"

// EntitlementResolver 计算登录用户的使用资格
type EntitlementResolver interface {
	Resolve(ctx context.Context, userID int64) (session.Entitlement, error)
}

// WithSession 构建本次请求的会话，须放在 OptionalAuth / JWTAuth 之后
// resolver 为 nil 时不计算资格（只需身份的接口）
func WithSession(resolver EntitlementResolver, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		sess := session.Anonymous(strings.TrimSpace(c.GetHeader(HeaderClientID)))

		if userID := GetUserID(c); userID > 0 {
			sess.UserID = userID
			sess.Username = GetUsername(c)
			sess.Role = GetUserRole(c)
			sess.Authenticated = true

			if resolver != nil {
				ent, err := resolver.Resolve(c.Request.Context(), userID)
				if err != nil {
					logger.Error("resolve entitlement failed", zap.Int64("user_id", userID), zap.Error(err))
					RespondError(c, err)
					c.Abort()
					return
				}
				sess.Apply(ent)
			}
		}

		c.Set(contextKeySession, sess)
		c.Next()
	}
}

// GetSession 从 Context 获取会话，未经过 WithSession 时返回匿名会话
func GetSession(c *gin.Context) session.Session {
	if v, ok := c.Get(contextKeySession); ok {
		return v.(session.Session)
	}
	return session.Anonymous(strings.TrimSpace(c.GetHeader(HeaderClientID)))
}

// ==================== 错误响应 ====================

// RespondError 按错误类型输出统一响应
func RespondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	body := gin.H{
		"code":    status,
		"message": err.Error(),
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		data := gin.H{"kind": appErr.Kind}
		if appErr.Field != "" {
			data["field"] = appErr.Field
		}
		body["data"] = data
		// 内部错误不向外暴露细节
		if appErr.Kind == apperr.KindPersistence {
			body["message"] = appErr.Message
		}
	} else if status == http.StatusInternalServerError {
		body["message"] = "服务器内部错误"
	}

	c.JSON(status, body)
}
