package controller

import (
	"errors"
	"math"

	"github.com/gin-gonic/gin"

	"malaka_backend/internal/model"
	"malaka_backend/internal/service"
	"malaka_backend/internal/util"
)

type WatchController struct {
	WatchService *service.WatchService
}

func NewWatchController(watchService *service.WatchService) *WatchController {
	return &WatchController{WatchService: watchService}
}

type StartSessionRequest struct {
	// 客户端拿到的视频总时长，课程时长未知时先到先得地回填
	DurationSeconds *int `json:"durationSeconds"`
}

// @Summary 开始或续接观看会话
// @Description 已打开的会话直接返回；30分钟内关闭的会话清除结束时间后续用；否则新建
// @Tags 观看
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Param body body StartSessionRequest false "客户端上报的视频时长"
// @Success 200 {object} util.Response
// @Router /lessons/{lessonId}/watch/start [post]
func (c *WatchController) StartSession(ctx *gin.Context) {
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

	var req StartSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	if req.DurationSeconds != nil && *req.DurationSeconds < 0 {
		util.BadRequest(ctx, "durationSeconds must be non-negative")
		return
	}

	result, err := c.WatchService.StartOrResume(user.UserID, lessonID, req.DurationSeconds)
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

type RecordEventRequest struct {
	EventType       string                 `json:"eventType" binding:"required"`
	PositionSeconds *float64               `json:"positionSeconds" binding:"required"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// @Summary 上报播放事件
// @Description 服务端赋时间戳后追加事件并全量重算观看秒数，达到课程时长80%时自动标记完成
// @Tags 观看
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Param sessionId path string true "会话ID"
// @Param body body RecordEventRequest true "播放事件"
// @Success 200 {object} util.Response
// @Router /lessons/{lessonId}/watch/{sessionId}/events [post]
func (c *WatchController) RecordEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	sessionID := ctx.Param("sessionId")
	if lessonID == 0 || sessionID == "" {
		util.BadRequest(ctx, "invalid lesson or session id")
		return
	}

	var req RecordEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if *req.PositionSeconds < 0 {
		util.BadRequest(ctx, util.ErrNegativePosition.Error())
		return
	}

	// 位置按整数秒入账，小数向下取整
	position := int(math.Floor(*req.PositionSeconds))

	result, err := c.WatchService.RecordEvent(
		sessionID,
		user.UserID,
		lessonID,
		model.WatchEventType(req.EventType),
		position,
		req.Metadata,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidEventType), errors.Is(err, util.ErrNegativePosition):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
