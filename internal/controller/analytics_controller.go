package controller

import (
	"net/http"

	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetStats godoc
// @Summary 互动统计
// @Description 按（教程、学生、事件类型）分组的播放事件计数，教师可见
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.InteractionStat
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/stats [get]
func (c *AnalyticsController) GetStats(ctx *gin.Context) {
	stats, err := c.AnalyticsService.InteractionStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
