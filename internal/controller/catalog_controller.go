package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"malaka_backend/internal/service"
	"malaka_backend/internal/util"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

func (c *CatalogController) handleCatalogError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSkillNotFound),
		errors.Is(err, util.ErrSubskillNotFound),
		errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 技能目录树
// @Tags 目录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /skills [get]
func (c *CatalogController) GetSkillTree(ctx *gin.Context) {
	skills, err := c.CatalogService.GetSkillTree(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, skills)
}

// @Summary 技能详情（含子技能）
// @Tags 目录
// @Produce json
// @Security ApiKeyAuth
// @Param skillSlug path string true "技能slug"
// @Success 200 {object} util.Response
// @Router /skills/{skillSlug} [get]
func (c *CatalogController) GetSkillDetail(ctx *gin.Context) {
	detail, err := c.CatalogService.GetSkillDetail(ctx.Param("skillSlug"))
	if err != nil {
		c.handleCatalogError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary 子技能课程列表（带我的进度）
// @Tags 目录
// @Produce json
// @Security ApiKeyAuth
// @Param skillSlug path string true "技能slug"
// @Param subskillSlug path string true "子技能slug"
// @Success 200 {object} util.Response
// @Router /skills/{skillSlug}/{subskillSlug} [get]
func (c *CatalogController) GetSubskillLessons(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.CatalogService.GetSubskillLessons(
		ctx.Param("skillSlug"),
		ctx.Param("subskillSlug"),
		user.UserID,
	)
	if err != nil {
		c.handleCatalogError(ctx, err)
		return
	}

	util.Success(ctx, items)
}

// @Summary 课程详情（进度+前后课导航）
// @Tags 目录
// @Produce json
// @Security ApiKeyAuth
// @Param skillSlug path string true "技能slug"
// @Param subskillSlug path string true "子技能slug"
// @Param lessonSlug path string true "课程slug"
// @Success 200 {object} util.Response
// @Router /skills/{skillSlug}/{subskillSlug}/{lessonSlug} [get]
func (c *CatalogController) GetLessonDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.CatalogService.GetLessonDetail(
		ctx.Param("skillSlug"),
		ctx.Param("subskillSlug"),
		ctx.Param("lessonSlug"),
		user.UserID,
	)
	if err != nil {
		c.handleCatalogError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// ---- 管理端 ----

// @Summary 创建技能
// @Tags 目录管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SkillRequest true "技能信息"
// @Success 201 {object} util.Response
// @Router /admin/skills [post]
func (c *CatalogController) CreateSkill(ctx *gin.Context) {
	var req service.SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.CatalogService.CreateSkill(ctx.Request.Context(), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, skill)
}

// @Summary 更新技能
// @Tags 目录管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param body body service.SkillRequest true "技能信息"
// @Success 200 {object} util.Response
// @Router /admin/skills/{id} [put]
func (c *CatalogController) UpdateSkill(ctx *gin.Context) {
	var req service.SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.CatalogService.UpdateSkill(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.handleCatalogError(ctx, err)
		return
	}

	util.Success(ctx, skill)
}

// @Summary 删除技能（级联删除子技能与课程）
// @Tags 目录管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /admin/skills/{id} [delete]
func (c *CatalogController) DeleteSkill(ctx *gin.Context) {
	if err := c.CatalogService.DeleteSkill(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 创建子技能
// @Tags 目录管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubskillRequest true "子技能信息"
// @Success 201 {object} util.Response
// @Router /admin/subskills [post]
func (c *CatalogController) CreateSubskill(ctx *gin.Context) {
	var req service.SubskillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subskill, err := c.CatalogService.CreateSubskill(ctx.Request.Context(), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, subskill)
}

// @Summary 更新子技能
// @Tags 目录管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "子技能ID"
// @Param body body service.SubskillRequest true "子技能信息"
// @Success 200 {object} util.Response
// @Router /admin/subskills/{id} [put]
func (c *CatalogController) UpdateSubskill(ctx *gin.Context) {
	var req service.SubskillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subskill, err := c.CatalogService.UpdateSubskill(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.handleCatalogError(ctx, err)
		return
	}

	util.Success(ctx, subskill)
}

// @Summary 删除子技能
// @Tags 目录管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "子技能ID"
// @Success 200 {object} util.Response
// @Router /admin/subskills/{id} [delete]
func (c *CatalogController) DeleteSubskill(ctx *gin.Context) {
	if err := c.CatalogService.DeleteSubskill(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 创建课程
// @Tags 目录管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.LessonRequest true "课程信息"
// @Success 201 {object} util.Response
// @Router /admin/lessons [post]
func (c *CatalogController) CreateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CatalogService.CreateLesson(ctx.Request.Context(), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// @Summary 更新课程
// @Tags 目录管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.LessonRequest true "课程信息"
// @Success 200 {object} util.Response
// @Router /admin/lessons/{id} [put]
func (c *CatalogController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CatalogService.UpdateLesson(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.handleCatalogError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// @Summary 删除课程（级联删除观看会话与事件）
// @Tags 目录管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /admin/lessons/{id} [delete]
func (c *CatalogController) DeleteLesson(ctx *gin.Context) {
	if err := c.CatalogService.DeleteLesson(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
