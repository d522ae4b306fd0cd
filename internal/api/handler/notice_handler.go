package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/api/dto"
	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

// ListNotices 收件箱
// @Summary 查询通知（仅本人），按通知时间倒序
// @Tags 通知
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param only_unread query bool false "只看未读"
// @Param igniter query string false "触发者（@handle / pub id）"
// @Param before query string false "RFC3339"
// @Param after query string false "RFC3339"
// @Param limit query int false "条数"
// @Success 200 {object} response.Response{data=map[string][]service.NoticeItem}
// @Router /api/v1/users/{userid}/notices [get]
func (h *Handler) ListNotices(c *gin.Context) {
	var q dto.NoticeListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()
	query := service.NoticeQuery{OnlyUnread: q.OnlyUnread, Before: q.Before, After: q.After, Limit: q.Limit}
	if q.Igniter != "" {
		spec, err := h.svc.Identity.Resolve(ctx, q.Igniter, middleware.CallerFrom(c))
		if err == nil {
			err = service.RejectIfSpecifiedByAnon(spec)
		}
		if err != nil {
			response.Error(c, err)
			return
		}
		query.IgniterID = spec.PubID
	}
	items, err := h.svc.Notices.List(ctx, middleware.SpecFrom(c).PubID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"notices": items})
}

// CountNotices 未读数
// @Summary 未读通知数（仅本人）
// @Tags 通知
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Success 200 {object} response.Response{data=map[string]int64}
// @Router /api/v1/users/{userid}/notices/count [get]
func (h *Handler) CountNotices(c *gin.Context) {
	n, err := h.svc.Notices.CountUnread(c.Request.Context(), middleware.SpecFrom(c).PubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unread": n})
}

// PatchNotices 批量已读
// @Summary 批量标记已读（仅本人）
// @Tags 通知
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param request body dto.NoticesPatchRequest true "通知 id"
// @Success 200 {object} response.Response{data=map[string]int64}
// @Failure 400 {object} response.Response
// @Router /api/v1/users/{userid}/notices [patch]
func (h *Handler) PatchNotices(c *gin.Context) {
	var req dto.NoticesPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Notices.MarkRead(c.Request.Context(), middleware.SpecFrom(c).PubID, req.NoticeIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"updated": n})
}

// PatchNotice 设置单条已读状态
// @Summary 设置单条通知已读/未读（仅本人）
// @Tags 通知
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param noticeid path string true "通知 id"
// @Param request body dto.NoticePatchRequest true "已读状态"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/notices/{noticeid} [patch]
func (h *Handler) PatchNotice(c *gin.Context) {
	var req dto.NoticePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.svc.Notices.SetRead(c.Request.Context(), middleware.SpecFrom(c).PubID, c.Param("noticeid"), *req.IsRead)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
