package controller

import (
	"errors"
	"hiphop_roadmap_backend/internal/service"
	"hiphop_roadmap_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
	IsRelease   bool // 生产环境下 Cookie 启用 Secure
}

func NewAuthController(authService *service.AuthService, userService *service.UserService, isRelease bool) *AuthController {
	return &AuthController{
		AuthService: authService,
		UserService: userService,
		IsRelease:   isRelease,
	}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary 注册新用户
// @Description 注册成功后返回 token，并写入 HttpOnly Cookie
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱或用户名已被占用"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingFields), errors.Is(err, util.ErrPasswordTooShort):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEmailRegistered), errors.Is(err, util.ErrUsernameTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	c.setTokenCookie(ctx, token)
	util.Created(ctx, gin.H{"token": token, "user": user})
}

// Login godoc
// @Summary 用户登录
// @Description 验证邮箱和密码，返回 JWT 并写入 Cookie
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "用户登录凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingFields):
			util.BadRequest(ctx, "please provide email and password")
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	c.setTokenCookie(ctx, token)
	util.Success(ctx, gin.H{"token": token, "user": user})
}

// Logout godoc
// @Summary 退出登录
// @Description 注销当前 token 并清除 Cookie
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.AuthService.Logout(ctx.Request.Context(), util.GetUserFromContext(ctx)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(util.TokenCookie, "", -1, "/", "", c.IsRelease, true)
	util.SuccessMessage(ctx, "Logged out successfully", nil)
}

// GetProfile godoc
// @Summary 获取当前用户
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/auth/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUserByID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// GetOverview godoc
// @Summary 个人主页概览
// @Description 用户信息、学习进度统计和个性化路线图
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Overview} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/auth/me/overview [get]
func (c *AuthController) GetOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.UserService.Overview(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, overview)
}

// UpdateProfile godoc
// @Summary 更新用户资料
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProfileUpdate true "要修改的字段"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱或用户名已被占用"
// @Router /api/auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingFields):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEmailRegistered), errors.Is(err, util.ErrUsernameTaken):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.SuccessMessage(ctx, "Profile updated", user)
}

func (c *AuthController) setTokenCookie(ctx *gin.Context, token string) {
	maxAge := int(c.AuthService.Cfg.JWT.ExpireTime.Seconds())
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(util.TokenCookie, token, maxAge, "/", "", c.IsRelease, true)
}
