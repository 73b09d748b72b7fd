package controller

import (
	"errors"
	"hiphop_roadmap_backend/internal/service"
	"hiphop_roadmap_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type MarkCompleteRequest struct {
	Notes string `json:"notes"`
}

// GetProgress godoc
// @Summary 获取当前用户的全部进度
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.List(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": len(progress), "progress": progress})
}

// GetStats godoc
// @Summary 获取进度统计
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ProgressStats} "成功"
// @Router /api/progress/stats [get]
func (c *ProgressController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.ProgressService.Stats(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// MarkComplete godoc
// @Summary 标记技能已完成
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   skillId path string true "技能ID"
// @Param   body body MarkCompleteRequest false "备注"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/progress/complete/{skillId} [post]
func (c *ProgressController) MarkComplete(ctx *gin.Context) {
	var req MarkCompleteRequest
	// 请求体可选
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.MarkComplete(ctx.Request.Context(), claims.UserID, ctx.Param("skillId"), req.Notes)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Skill marked as complete", progress)
}

// MarkIncomplete godoc
// @Summary 标记技能未完成
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   skillId path string true "技能ID"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/progress/incomplete/{skillId} [post]
func (c *ProgressController) MarkIncomplete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.MarkIncomplete(ctx.Request.Context(), claims.UserID, ctx.Param("skillId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Skill marked as incomplete", progress)
}

// UpdateProgress godoc
// @Summary 更新技能进度（备注、完成状态）
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   skillId path string true "技能ID"
// @Param   body body service.ProgressUpdate true "要修改的字段"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/progress/{skillId} [put]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	var req service.ProgressUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.Update(ctx.Request.Context(), claims.UserID, ctx.Param("skillId"), req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Progress updated", progress)
}

// DeleteProgress godoc
// @Summary 删除技能进度
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   skillId path string true "技能ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "进度不存在"
// @Router /api/progress/{skillId} [delete]
func (c *ProgressController) DeleteProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ProgressService.Delete(ctx.Request.Context(), claims.UserID, ctx.Param("skillId")); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Progress deleted", nil)
}

func (c *ProgressController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSkillNotFound):
		util.NotFoundMessage(ctx, "Skill not found")
	case errors.Is(err, util.ErrProgressNotFound):
		util.NotFoundMessage(ctx, "Progress not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
