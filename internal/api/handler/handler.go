package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

// Handler HTTP 处理器，路径上的 :userid 已由中间件解析
type Handler struct {
	svc *service.Services
}

func NewHandler(svc *service.Services) *Handler {
	return &Handler{svc: svc}
}

// subject 取已解析的主体并确认存在；失败时已写响应
func (h *Handler) subject(c *gin.Context) (*service.IdentitySpecifier, *model.User, bool) {
	spec := middleware.SpecFrom(c)
	if spec == nil {
		response.NotFound(c, "user not found")
		return nil, nil, false
	}
	u, err := h.svc.Identity.MustExist(c.Request.Context(), spec)
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return spec, u, true
}

// variantOf 通过匿名 ID 寻址时按匿名人格判定
func variantOf(spec *service.IdentitySpecifier) model.Variant {
	if spec.SpecByAnon {
		return model.VariantAnon
	}
	return model.VariantReal
}

// resolveTargets 把请求体里的用户记法解析为 pub id，不存在即 NotFound。
// 匿名 ID 不能作为目标，否则写入的关系会暴露其真实 pub id。
func (h *Handler) resolveTargets(c *gin.Context, tokens []string) ([]string, bool) {
	ctx := c.Request.Context()
	caller := middleware.CallerFrom(c)
	ids := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		spec, err := h.svc.Identity.Resolve(ctx, tok, caller)
		if err == nil {
			err = service.RejectIfSpecifiedByAnon(spec)
		}
		if err == nil {
			_, err = h.svc.Identity.MustExist(ctx, spec)
		}
		if err != nil {
			response.Error(c, err)
			return nil, false
		}
		ids = append(ids, spec.PubID)
	}
	return ids, true
}
