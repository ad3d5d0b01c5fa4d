package controller

import (
	"errors"
	"net/http"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		AuthService: authService,
		Cfg:         cfg,
	}
}

// SignupRequest 注册请求。role 缺省为 student，只接受受支持的角色。
// swagger:model SignupRequest
type SignupRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=student teacher"`
}

// Signup godoc
// @Summary 注册新用户
// @Description 创建学生或教师账号
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body SignupRequest true "注册信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名或邮箱已存在"
// @Router /signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role := model.UserRole(req.Role)
	if role == "" {
		role = model.Student
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrDuplicateUser) {
			util.Error(ctx, http.StatusConflict, "Username or email already exists")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 校验凭据，写入会话 Cookie 并返回令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body LoginRequest true "登录凭据"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, "Invalid username or password")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	secure := c.Cfg.Server.Mode == "release"
	ctx.SetCookie(util.SessionCookie, token, int(c.Cfg.JWT.ExpireTime.Seconds()), "/", "", secure, true)

	util.Success(ctx, gin.H{
		"token":    token,
		"redirect": dashboardPath(user.Role),
	})
}

// Logout godoc
// @Summary 退出登录
// @Description 拉黑当前令牌并清除会话 Cookie
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 302
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims != nil {
		if err := c.AuthService.Logout(ctx.Request.Context(), claims); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	secure := c.Cfg.Server.Mode == "release"
	ctx.SetCookie(util.SessionCookie, "", -1, "/", "", secure, true)
	util.RedirectToLogin(ctx)
}

// Home 根路径：已登录跳对应面板，未登录跳登录页
func (c *AuthController) Home(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.RedirectToLogin(ctx)
		return
	}
	ctx.Redirect(http.StatusFound, dashboardPath(claims.Role))
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
		"lastLogin": user.LastLogin,
	})
}

func dashboardPath(role model.UserRole) string {
	if role == model.Teacher {
		return "/teacher/dashboard"
	}
	return "/student/dashboard"
}
