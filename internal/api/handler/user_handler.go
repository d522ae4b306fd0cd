package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/api/dto"
	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

// GetProfile 查看资料
// @Summary 查看用户资料（按查看方裁剪）
// @Description 通过 ~anon 寻址时只返回匿名人格
// @Tags 用户
// @Produce json
// @Param userid path string true "me / @handle / ~anon / pub id"
// @Success 200 {object} response.Response{data=service.ProfileView}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	spec := middleware.SpecFrom(c)
	view, err := h.svc.Profiles.Get(c.Request.Context(), spec, service.ViewerOf(middleware.CallerFrom(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateHandle 修改 handle
// @Summary 修改 handle（仅本人）
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param request body dto.HandleRequest true "新 handle"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/users/{userid}/handle [patch]
func (h *Handler) UpdateHandle(c *gin.Context) {
	var req dto.HandleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	spec := middleware.SpecFrom(c)
	if err := h.svc.Profiles.UpdateHandle(c.Request.Context(), spec.PubID, req.Handle); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
