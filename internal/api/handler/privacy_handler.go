package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/api/dto"
	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

// GetPrivacy 读取真实人格隐私设置
// @Summary 读取隐私设置（仅本人）
// @Tags 隐私
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Success 200 {object} response.Response{data=model.PrivacySetting}
// @Router /api/v1/users/{userid}/config/privacy [get]
func (h *Handler) GetPrivacy(c *gin.Context) {
	p, err := h.svc.Policies.Real(c.Request.Context(), middleware.SpecFrom(c).PubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// PatchPrivacy 部分更新真实人格隐私设置
// @Summary 修改隐私设置（仅本人）
// @Tags 隐私
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param request body dto.PrivacyPatchRequest true "要修改的字段"
// @Success 200 {object} response.Response{data=model.PrivacySetting}
// @Failure 400 {object} response.Response
// @Router /api/v1/users/{userid}/config/privacy [patch]
func (h *Handler) PatchPrivacy(c *gin.Context) {
	var req dto.PrivacyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Policies.PatchReal(c.Request.Context(), middleware.SpecFrom(c).PubID, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// GetAnonPrivacy 读取匿名人格隐私设置
// @Summary 读取匿名隐私设置（仅本人）
// @Tags 隐私
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Success 200 {object} response.Response{data=model.AnonPrivacySetting}
// @Router /api/v1/users/{userid}/config/privacy/anon [get]
func (h *Handler) GetAnonPrivacy(c *gin.Context) {
	p, err := h.svc.Policies.Anon(c.Request.Context(), middleware.SpecFrom(c).PubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// PatchAnonPrivacy 部分更新匿名人格隐私设置
// @Summary 修改匿名隐私设置（仅本人）
// @Tags 隐私
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param request body dto.AnonPrivacyPatchRequest true "要修改的字段"
// @Success 200 {object} response.Response{data=model.AnonPrivacySetting}
// @Failure 400 {object} response.Response
// @Router /api/v1/users/{userid}/config/privacy/anon [patch]
func (h *Handler) PatchAnonPrivacy(c *gin.Context) {
	var req dto.AnonPrivacyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Policies.PatchAnon(c.Request.Context(), middleware.SpecFrom(c).PubID, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}
