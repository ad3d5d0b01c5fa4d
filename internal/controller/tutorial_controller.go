package controller

import (
	"errors"
	"net/http"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TutorialController struct {
	TutorialService *service.TutorialService
}

func NewTutorialController(tutorialService *service.TutorialService) *TutorialController {
	return &TutorialController{TutorialService: tutorialService}
}

// swagger:model AddTutorialRequest
type AddTutorialRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Description string `json:"description" form:"description"`
	VideoURL    string `json:"video_url" form:"video_url" binding:"required,url"`
}

// AddTutorialForm GET 表单页。渲染交给前端，这里只确认访问权限。
func (c *TutorialController) AddTutorialForm(ctx *gin.Context) {
	util.Success(ctx, gin.H{"page": "add_tutorial"})
}

// CreateTutorial godoc
// @Summary 发布教程
// @Description 教师发布一条新的视频教程
// @Tags 教程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AddTutorialRequest true "教程信息"
// @Success 302
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /teacher/add_tutorial [post]
func (c *TutorialController) CreateTutorial(ctx *gin.Context) {
	var req AddTutorialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tutorial := &model.Tutorial{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	}

	if err := c.TutorialService.Create(tutorial, claims.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Redirect(http.StatusFound, "/teacher/dashboard")
}

// ViewTutorial 页面侧教程详情；未知 id 跳回首页
func (c *TutorialController) ViewTutorial(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	tutorial, err := c.TutorialService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrTutorialNotFound) {
			ctx.Redirect(http.StatusFound, "/")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, tutorial)
}

// ListTutorials godoc
// @Summary 教程列表
// @Description 全部教程，按发布时间倒序，附带教师名
// @Tags 教程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TutorialWithTeacher}
// @Router /api/tutorials [get]
func (c *TutorialController) ListTutorials(ctx *gin.Context) {
	tutorials, err := c.TutorialService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tutorials)
}

// GetTutorial godoc
// @Summary 教程详情
// @Tags 教程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "教程ID"
// @Success 200 {object} util.Response{data=model.TutorialWithTeacher}
// @Failure 404 {object} util.Response
// @Router /api/tutorials/{id} [get]
func (c *TutorialController) GetTutorial(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	tutorial, err := c.TutorialService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrTutorialNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, tutorial)
}

// UploadVideo godoc
// @Summary 上传教学视频
// @Description 教师上传视频文件，返回可用于发布教程的 URL 与元数据
// @Tags 教程
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param video formData file true "视频文件"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "文件类型不合法"
// @Router /teacher/upload_video [post]
func (c *TutorialController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	url, info, err := c.TutorialService.UploadVideo(ctx.Request.Context(), file)
	if err != nil {
		if errors.Is(err, util.ErrInvalidVideoExt) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"url":      url,
		"duration": info.Duration,
		"format":   info.Format,
		"size":     info.Size,
	})
}
