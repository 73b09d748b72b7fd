package controller

import (
	"errors"
	"hiphop_roadmap_backend/internal/roadmap"
	"hiphop_roadmap_backend/internal/service"
	"hiphop_roadmap_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PersonalizationController struct {
	PersonalizationService *service.PersonalizationService
}

func NewPersonalizationController(personalizationService *service.PersonalizationService) *PersonalizationController {
	return &PersonalizationController{PersonalizationService: personalizationService}
}

// swagger:model PersonalizationRequest
type PersonalizationRequest struct {
	Answers roadmap.QuizAnswers `json:"answers"`
}

// SavePersonalization godoc
// @Summary 保存问卷答案并生成个性化路线图
// @Tags 个性化
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body PersonalizationRequest true "问卷答案"
// @Success 200 {object} util.Response{data=model.Personalization} "成功"
// @Failure 400 {object} util.Response "技能目录为空"
// @Router /api/personalization [post]
func (c *PersonalizationController) SavePersonalization(ctx *gin.Context) {
	var req PersonalizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	p, err := c.PersonalizationService.Save(ctx.Request.Context(), claims.UserID, req.Answers)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Personalization saved successfully", p)
}

// GetPersonalization godoc
// @Summary 获取个性化路线图
// @Tags 个性化
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Personalization} "成功"
// @Failure 404 {object} util.Response "尚未完成问卷"
// @Router /api/personalization [get]
func (c *PersonalizationController) GetPersonalization(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	p, err := c.PersonalizationService.Get(ctx.Request.Context(), claims.UserID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// RegeneratePersonalization godoc
// @Summary 使用已保存的答案重新生成路线图
// @Tags 个性化
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Personalization} "成功"
// @Failure 404 {object} util.Response "尚未完成问卷"
// @Router /api/personalization/regenerate [post]
func (c *PersonalizationController) RegeneratePersonalization(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	p, err := c.PersonalizationService.Regenerate(ctx.Request.Context(), claims.UserID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Roadmap regenerated successfully", p)
}

// DeletePersonalization godoc
// @Summary 删除个性化路线图
// @Tags 个性化
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "尚未完成问卷"
// @Router /api/personalization [delete]
func (c *PersonalizationController) DeletePersonalization(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.PersonalizationService.Delete(ctx.Request.Context(), claims.UserID); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Personalization deleted successfully", nil)
}

func (c *PersonalizationController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCatalogEmpty):
		util.Error(ctx, http.StatusBadRequest, "No skills found in database. Please seed the database first.")
	case errors.Is(err, util.ErrPersonalizationNotFound):
		util.NotFoundMessage(ctx, "No personalization found")
	default:
		util.LogInternalError(ctx, err)
	}
}
