package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"malaka_backend/internal/service"
	"malaka_backend/internal/util"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary 上传课程视频
// @Description 存储视频并用 ffprobe 探测时长，课程时长未知时回填
// @Tags 目录管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response
// @Router /admin/lessons/{id}/video [post]
func (c *ContentController) UploadLessonVideo(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing video file")
		return
	}

	result, err := c.ContentService.UploadLessonVideo(ctx.Request.Context(), lessonID, fileHeader)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
