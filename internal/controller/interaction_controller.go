package controller

import (
	"errors"
	"net/http"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InteractionController struct {
	InteractionService *service.InteractionService
}

func NewInteractionController(interactionService *service.InteractionService) *InteractionController {
	return &InteractionController{InteractionService: interactionService}
}

// swagger:model InteractionRequest
type InteractionRequest struct {
	TutorialID      uint   `json:"tutorial_id" binding:"required"`
	InteractionType string `json:"interaction_type" binding:"required,oneof=play pause complete"`
}

// Record godoc
// @Summary 上报播放事件
// @Description 追加一条播放事件记录，相同事件重复上报会产生多条记录
// @Tags 互动
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body InteractionRequest true "事件"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} util.Response "字段缺失或取值非法"
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response "教程不存在"
// @Router /api/interaction [post]
func (c *InteractionController) Record(ctx *gin.Context) {
	var req InteractionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.InteractionService.Record(claims.UserID, req.TutorialID, model.InteractionKind(req.InteractionType))
	if err != nil {
		if errors.Is(err, util.ErrTutorialNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
