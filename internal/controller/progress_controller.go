package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"malaka_backend/internal/service"
	"malaka_backend/internal/util"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary 手动标记课程完成
// @Description 幂等；完成状态只会从未完成变为已完成
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /lessons/{lessonId}/complete [post]
func (c *ProgressController) MarkComplete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	progress, err := c.ProgressService.MarkComplete(user.UserID, lessonID)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"status":      "ok",
		"isCompleted": progress.IsCompleted,
		"lessonId":    progress.LessonID,
	})
}

// @Summary 我的学习进度
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /progress [get]
func (c *ProgressController) ListMyProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progresses, err := c.ProgressService.ListByUser(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progresses)
}
