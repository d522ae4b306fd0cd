package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/api/dto"
	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

// StartStatus 开始训练
// @Summary 开始训练并通知粉丝与同场馆用户（仅本人）
// @Tags 训练状态
// @Accept json
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Param request body dto.StartStatusRequest false "场馆"
// @Success 201 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{userid}/status [post]
func (h *Handler) StartStatus(c *gin.Context) {
	var req dto.StartStatusRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}
	st, noticeID, err := h.svc.Status.Start(c.Request.Context(), middleware.SpecFrom(c).PubID, req.GymID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"status": st, "notice_id": noticeID})
}

// FinishStatus 结束训练
// @Summary 结束进行中的训练（仅本人）
// @Tags 训练状态
// @Produce json
// @Security Bearer
// @Param userid path string true "me / @handle / pub id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/status/finish [post]
func (h *Handler) FinishStatus(c *gin.Context) {
	if err := h.svc.Status.Finish(c.Request.Context(), middleware.SpecFrom(c).PubID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetStatus 查看最近一次训练
// @Summary 最近一次训练，按隐私设置裁剪；不可见或从未训练时 data 为 null
// @Tags 训练状态
// @Produce json
// @Param userid path string true "me / @handle / ~anon / pub id"
// @Success 200 {object} response.Response{data=service.CurrentStatus}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{userid}/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	cur, err := h.svc.Status.Current(c.Request.Context(), middleware.SpecFrom(c), service.ViewerOf(middleware.CallerFrom(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cur)
}
