package shared

import (
	"strings"

	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// SetSession 写入当前会话
func SetSession(c *gin.Context, token string, session *service.Session) {
	c.Set(constants.ContextKeySessionToken, token)
	c.Set(constants.ContextKeySession, session)
}

// GetSession 读取当前会话，不存在时返回 401 响应
func GetSession(c *gin.Context) (*service.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		RespondError(c, service.ErrNotLoggedIn)
		return nil, false
	}
	session, ok := value.(*service.Session)
	if !ok || session == nil {
		RespondError(c, service.ErrNotLoggedIn)
		return nil, false
	}
	return session, true
}

// GetSessionToken 读取当前会话 token
func GetSessionToken(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionToken)
}

// SessionTokenFromRequest 从 Authorization: Bearer 或 X-Session-Token 头读取 token
func SessionTokenFromRequest(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		if strings.HasPrefix(header, constants.AuthorizationBearerPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(header, constants.AuthorizationBearerPrefix))
		}
	}
	return strings.TrimSpace(c.GetHeader(constants.SessionTokenHeader))
}
