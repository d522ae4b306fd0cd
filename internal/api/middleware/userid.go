package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/apperr"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

const specKey = "user_spec"

// ResolveUserID 解析路径上的 :userid（me / @handle / ~anon / pub id）
func ResolveUserID(resolver *service.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, err := resolver.Resolve(c.Request.Context(), c.Param("userid"), CallerFrom(c))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(specKey, spec)
		c.Next()
	}
}

// RejectSpecByAnon 通过匿名 ID 指定主体时拒绝
func RejectSpecByAnon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.RejectIfSpecifiedByAnon(SpecFrom(c)); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelf 只有主体本人可以访问
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		if caller == nil {
			response.Error(c, apperr.Unauthorized("User", "authentication required"))
			c.Abort()
			return
		}
		spec := SpecFrom(c)
		if spec == nil || !spec.IsCaller(caller) {
			response.Error(c, apperr.Forbidden("User", "only the owner can do this"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SpecFrom ResolveUserID 之后可用
func SpecFrom(c *gin.Context) *service.IdentitySpecifier {
	v, ok := c.Get(specKey)
	if !ok {
		return nil
	}
	spec, _ := v.(*service.IdentitySpecifier)
	return spec
}
