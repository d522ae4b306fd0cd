package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/jwt"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

const callerKey = "caller"

// OptionalAuth 有 Bearer 令牌时校验并注入调用方；没有时按未登录继续。
// 令牌存在但无效直接 401。
func OptionalAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}
		claims, err := jwtMgr.Parse(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(callerKey, &service.Caller{PubID: claims.PubID()})
		c.Next()
	}
}

// RequireAuth 必须已登录
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerFrom(c) == nil {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom 当前调用方，未登录为 nil
func CallerFrom(c *gin.Context) *service.Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*service.Caller)
	return caller
}
