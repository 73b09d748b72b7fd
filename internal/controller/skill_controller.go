package controller

import (
	"errors"
	"fmt"
	"hiphop_roadmap_backend/internal/model"
	"hiphop_roadmap_backend/internal/service"
	"hiphop_roadmap_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

// GetAllSkills godoc
// @Summary 获取全部技能（按分类分组）
// @Tags 技能
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/skills [get]
func (c *SkillController) GetAllSkills(ctx *gin.Context) {
	categories, err := c.SkillService.ListGrouped(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"categories": categories})
}

// GetCategories godoc
// @Summary 获取分类列表及技能数量
// @Tags 技能
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/skills/categories [get]
func (c *SkillController) GetCategories(ctx *gin.Context) {
	categories, err := c.SkillService.ListCategories(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": len(categories), "categories": categories})
}

// GetSkillsByCategory godoc
// @Summary 获取某个分类下的技能
// @Tags 技能
// @Produce  json
// @Param   categoryId path string true "分类ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/skills/category/{categoryId} [get]
func (c *SkillController) GetSkillsByCategory(ctx *gin.Context) {
	skills, err := c.SkillService.ListByCategory(ctx.Request.Context(), ctx.Param("categoryId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": len(skills), "skills": skills})
}

// GetSkill godoc
// @Summary 获取技能详情
// @Tags 技能
// @Produce  json
// @Param   skillId path string true "技能ID"
// @Success 200 {object} util.Response{data=service.SkillDetail} "成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/skills/{skillId} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	skill, err := c.SkillService.Get(ctx.Request.Context(), ctx.Param("skillId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// CreateSkill godoc
// @Summary 创建技能
// @Tags 技能
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.Skill true "技能"
// @Success 201 {object} util.Response{data=model.Skill} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "技能ID已存在"
// @Router /api/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	var skill model.Skill
	if err := ctx.ShouldBindJSON(&skill); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	skill.BaseModel = model.BaseModel{}

	if err := c.SkillService.Create(ctx.Request.Context(), &skill); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}

// UpdateSkill godoc
// @Summary 更新技能（部分字段）
// @Tags 技能
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   skillId path string true "技能ID"
// @Param   body body service.SkillUpdate true "要修改的字段"
// @Success 200 {object} util.Response{data=model.Skill} "成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/skills/{skillId} [put]
func (c *SkillController) UpdateSkill(ctx *gin.Context) {
	var req service.SkillUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.Update(ctx.Request.Context(), ctx.Param("skillId"), req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Skill updated successfully", skill)
}

// DeleteSkill godoc
// @Summary 删除技能
// @Tags 技能
// @Produce  json
// @Security ApiKeyAuth
// @Param   skillId path string true "技能ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/skills/{skillId} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	if err := c.SkillService.Delete(ctx.Request.Context(), ctx.Param("skillId")); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Skill deleted successfully", nil)
}

// SeedSkills godoc
// @Summary 导入内置技能目录
// @Description 只插入尚不存在的技能，可重复调用
// @Tags 技能
// @Produce  json
// @Success 201 {object} util.Response{data=object} "成功"
// @Router /api/skills/seed [post]
func (c *SkillController) SeedSkills(ctx *gin.Context) {
	skills, err := c.SkillService.Seed(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Respond(ctx, http.StatusCreated, fmt.Sprintf("Seeded %d skills", len(skills)), gin.H{"skills": skills})
}

// UploadVideo godoc
// @Summary 上传技能教学视频
// @Tags 技能
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   skillId path string true "技能ID"
// @Param   file formData file true "视频文件"
// @Success 200 {object} util.Response{data=model.Skill} "成功"
// @Failure 400 {object} util.Response "文件类型错误"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/skills/{skillId}/video [post]
func (c *SkillController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	skill, err := c.SkillService.UploadVideo(ctx.Request.Context(), ctx.Param("skillId"), file)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Video uploaded", skill)
}

func (c *SkillController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSkillNotFound):
		util.NotFoundMessage(ctx, "Skill not found")
	case errors.Is(err, util.ErrSkillExists):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrSkillFieldsRequired),
		errors.Is(err, util.ErrInvalidDifficulty),
		errors.Is(err, util.ErrInvalidFileType):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
