package controller

import (
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	TutorialService  *service.TutorialService
	AnalyticsService *service.AnalyticsService
}

func NewDashboardController(tutorialService *service.TutorialService, analyticsService *service.AnalyticsService) *DashboardController {
	return &DashboardController{
		TutorialService:  tutorialService,
		AnalyticsService: analyticsService,
	}
}

// StudentDashboard godoc
// @Summary 学生面板
// @Description 当前学生可观看的全部教程
// @Tags 面板
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /student/dashboard [get]
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	tutorials, err := c.TutorialService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"username":  claims.Username,
		"tutorials": tutorials,
	})
}

// TeacherDashboard godoc
// @Summary 教师面板
// @Description 教程列表与互动统计
// @Tags 面板
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /teacher/dashboard [get]
func (c *DashboardController) TeacherDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	tutorials, err := c.TutorialService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	stats, err := c.AnalyticsService.InteractionStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"username":  claims.Username,
		"tutorials": tutorials,
		"stats":     stats,
	})
}
