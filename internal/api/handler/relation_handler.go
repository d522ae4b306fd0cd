package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/api/dto"
	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/internal/model"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

// ListFollowers 查询粉丝
// @Summary 查询粉丝列表（受 followers 隐私设置约束）
// @Tags 关系链
// @Produce json
// @Param userid path string true "me / @handle / ~anon / pub id"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/rel/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	h.listRelation(c, model.FieldFollowers, h.svc.Relationships.ListFans)
}

// ListFollowings 查询关注
// @Summary 查询关注列表（受 followings 隐私设置约束）
// @Tags 关系链
// @Produce json
// @Param userid path string true "me / @handle / ~anon / pub id"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/rel/followings [get]
func (h *Handler) ListFollowings(c *gin.Context) {
	h.listRelation(c, model.FieldFollowings, h.svc.Relationships.ListFollowing)
}

type pageLister func(ctx context.Context, userID string, page, pageSize int) ([]string, error)

// listRelation 不可见时与用户不存在同样返回 404
func (h *Handler) listRelation(c *gin.Context, field model.Field, list pageLister) {
	spec, u, ok := h.subject(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	visible, err := h.svc.Evaluator.CanView(ctx, u.PubID, service.ViewerOf(middleware.CallerFrom(c)), field, variantOf(spec))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !visible {
		response.NotFound(c, "user not found")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	ids, err := list(ctx, u.PubID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": ids})
}

// PatchFollowings 批量关注/取关
// @Summary 批量关注或取消关注（仅本人）
// @Tags 关系链
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param request body dto.FollowingsPatchRequest true "关注与取关目标"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/rel/followings [patch]
func (h *Handler) PatchFollowings(c *gin.Context) {
	var req dto.FollowingsPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	follow, ok := h.resolveTargets(c, req.Follow)
	if !ok {
		return
	}
	unfollow, ok := h.resolveTargets(c, req.Unfollow)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	me := middleware.SpecFrom(c).PubID
	for _, to := range follow {
		if _, err := h.svc.Relationships.Follow(ctx, me, to); err != nil {
			response.Error(c, err)
			return
		}
	}
	for _, to := range unfollow {
		if err := h.svc.Relationships.Unfollow(ctx, me, to); err != nil {
			response.Error(c, err)
			return
		}
	}
	response.Success(c, nil)
}

// ListBlocks 查询屏蔽列表
// @Summary 查询屏蔽列表（仅本人）
// @Tags 关系链
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{userid}/rel/blocks [get]
func (h *Handler) ListBlocks(c *gin.Context) {
	ids, err := h.svc.Relationships.ListBlocked(c.Request.Context(), middleware.SpecFrom(c).PubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"list": ids})
}

// PatchBlocks 批量屏蔽/解除屏蔽
// @Summary 批量屏蔽或解除屏蔽（仅本人）
// @Tags 关系链
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param request body dto.BlocksPatchRequest true "屏蔽与解除目标"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/rel/blocks [patch]
func (h *Handler) PatchBlocks(c *gin.Context) {
	var req dto.BlocksPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	block, ok := h.resolveTargets(c, req.Block)
	if !ok {
		return
	}
	unblock, ok := h.resolveTargets(c, req.Unblock)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	me := middleware.SpecFrom(c).PubID
	for _, id := range block {
		if err := h.svc.Relationships.Block(ctx, me, id); err != nil {
			response.Error(c, err)
			return
		}
	}
	for _, id := range unblock {
		if err := h.svc.Relationships.Unblock(ctx, me, id); err != nil {
			response.Error(c, err)
			return
		}
	}
	response.Success(c, nil)
}

// RequestPartner 发送训练搭子请求
// @Summary 向目标用户发送训练搭子请求
// @Description 目标不能以匿名 ID 寻址
// @Tags 关系链
// @Produce json
// @Security Bearer
// @Param userid path string true "@handle / pub id"
// @Success 201 {object} response.Response{data=map[string]string}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/rel/partner_request [post]
func (h *Handler) RequestPartner(c *gin.Context) {
	_, u, ok := h.subject(c)
	if !ok {
		return
	}
	noticeID, err := h.svc.Relationships.RequestPartner(c.Request.Context(), middleware.CallerFrom(c).PubID, u.PubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"notice_id": noticeID})
}
