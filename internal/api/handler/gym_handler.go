package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/gymsocial/internal/api/middleware"
	"github.com/d60-Lab/gymsocial/internal/service"
	"github.com/d60-Lab/gymsocial/pkg/response"
)

// ListGymTrainingUsers 场馆内训练中的用户
// @Summary 当前在场馆训练的其他用户，分实名、匿名、隐藏三组
// @Tags 场馆
// @Produce json
// @Param gymid path string true "场馆 id"
// @Success 200 {object} response.Response{data=service.GymTrainingUsers}
// @Router /api/v1/gyms/{gymid}/training_users [get]
func (h *Handler) ListGymTrainingUsers(c *gin.Context) {
	res, err := h.svc.Gyms.TrainingUsers(c.Request.Context(), c.Param("gymid"), service.ViewerOf(middleware.CallerFrom(c)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
