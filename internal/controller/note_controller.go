package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"malaka_backend/internal/service"
	"malaka_backend/internal/util"
)

type NoteController struct {
	NoteService *service.NoteService
}

func NewNoteController(noteService *service.NoteService) *NoteController {
	return &NoteController{NoteService: noteService}
}

// @Summary 获取我的课程笔记
// @Tags 笔记
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /lessons/{lessonId}/note [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	note, err := c.NoteService.GetNote(user.UserID, util.MustParseUint(ctx.Param("lessonId")))
	if err != nil {
		if errors.Is(err, util.ErrNoteNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, note)
}

type SaveNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// @Summary 保存我的课程笔记
// @Tags 笔记
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Param body body SaveNoteRequest true "笔记内容"
// @Success 200 {object} util.Response
// @Router /lessons/{lessonId}/note [put]
func (c *NoteController) SaveNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.NoteService.SaveNote(user.UserID, util.MustParseUint(ctx.Param("lessonId")), req.Content)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, note)
}

// @Summary 删除我的课程笔记
// @Tags 笔记
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /lessons/{lessonId}/note [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.NoteService.DeleteNote(user.UserID, util.MustParseUint(ctx.Param("lessonId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
