package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
	"malaka_backend/internal/watchtime"
	"malaka_backend/pkg/logger"
)

// ResumeGraceWindow 会话关闭后多长时间内 start 调用续接原会话而不是新开，
// 避免刷新页面、误关标签页把一次观看拆成多段分析数据
const ResumeGraceWindow = 30 * time.Minute

// WatchService 负责观看会话的生命周期：开始/续接/结束、事件入账、
// 观看秒数重算和自动完成联动
type WatchService struct {
	SessionRepo *repository.WatchSessionRepository
	LessonRepo  *repository.LessonRepository
	ProgressSvc *ProgressService
	DB          *gorm.DB
	now         func() time.Time
}

func NewWatchService(
	sessionRepo *repository.WatchSessionRepository,
	lessonRepo *repository.LessonRepository,
	progressSvc *ProgressService,
	db *gorm.DB,
) *WatchService {
	return &WatchService{
		SessionRepo: sessionRepo,
		LessonRepo:  lessonRepo,
		ProgressSvc: progressSvc,
		DB:          db,
		now:         time.Now,
	}
}

type StartSessionResult struct {
	SessionID           string `json:"sessionId"`
	LastPositionSeconds int    `json:"lastPositionSeconds"`
}

// StartOrResume 解析(用户,课程)应该使用的会话：
// 已有打开的会话直接返回；最近关闭且在宽限期内的会话清掉 ended_at 续用；
// 否则新建一个计数器归零的会话。
// 课程时长未知且客户端带了时长时先到先得地回填。
func (s *WatchService) StartOrResume(userID, lessonID uint, clientDuration *int) (*StartSessionResult, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if (lesson.DurationSeconds == nil || *lesson.DurationSeconds == 0) &&
		clientDuration != nil && *clientDuration > 0 {
		if err := s.LessonRepo.SetDurationIfUnset(lesson.ID, *clientDuration); err != nil {
			return nil, err
		}
	}

	session, err := s.SessionRepo.FindOpen(userID, lessonID)
	if err == nil {
		return &StartSessionResult{
			SessionID:           session.ID,
			LastPositionSeconds: session.LastPositionSeconds,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session, err = s.SessionRepo.FindLastEnded(userID, lessonID)
	if err == nil && session.EndedAt != nil &&
		s.now().Sub(*session.EndedAt) <= ResumeGraceWindow {
		if err := s.SessionRepo.Reopen(session); err != nil {
			return nil, err
		}
		return &StartSessionResult{
			SessionID:           session.ID,
			LastPositionSeconds: session.LastPositionSeconds,
		}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session = &model.WatchSession{
		UserID:    userID,
		LessonID:  lessonID,
		StartedAt: s.now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}

	return &StartSessionResult{SessionID: session.ID}, nil
}

type RecordEventResult struct {
	AutoCompleted        bool `json:"autoCompleted"`
	ActualWatchedSeconds int  `json:"actualWatchedSeconds"`
}

// RecordEvent 给会话追加一条事件并全量重算观看秒数。
//
// 事件时间戳由服务端赋值，客户端时间一律不信任。事件落库、重算和会话
// 计数器更新在同一事务内；进度行同步和自动完成是事后尽力而为的副作用，
// 失败只记日志，绝不因此丢掉已经收到的原始事件。
//
// 已关闭的会话（ended_at 非空）仍然接受写入且不会被重新打开。
func (s *WatchService) RecordEvent(
	sessionID string,
	userID, lessonID uint,
	eventType model.WatchEventType,
	position int,
	metadata map[string]interface{},
) (*RecordEventResult, error) {
	if !eventType.Valid() {
		return nil, util.ErrInvalidEventType
	}
	if position < 0 {
		return nil, util.ErrNegativePosition
	}

	// 归属校验：不存在和不属于当前用户一律 NotFound，不泄露会话是否存在
	session, err := s.SessionRepo.FindOwned(sessionID, userID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	now := s.now()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := repository.NewWatchSessionRepository(tx)

		event := &model.WatchEvent{
			SessionID:       session.ID,
			EventType:       eventType,
			PositionSeconds: position,
			CreatedAt:       now,
			Metadata:        datatypes.JSONMap(metadata),
		}
		if err := txRepo.AppendEvent(event); err != nil {
			return err
		}

		events, err := txRepo.ListEvents(session.ID)
		if err != nil {
			return err
		}

		session.ActualWatchedSeconds = watchtime.Reconstruct(events)
		session.LastPositionSeconds = position
		if position > session.MaxReachedSeconds {
			session.MaxReachedSeconds = position
		}
		if eventType.IsTerminal() {
			session.EndedAt = &now
		}

		return txRepo.Save(session)
	})
	if err != nil {
		return nil, err
	}

	// 进度镜像 + 自动完成：次级写入，失败不回滚事件
	autoCompleted, err := s.ProgressSvc.SyncWatchProgress(session)
	if err != nil {
		logger.Log.Error("progress sync failed after event append",
			zap.String("sessionId", session.ID),
			zap.Uint("userId", userID),
			zap.Uint("lessonId", lessonID),
			zap.Error(err),
		)
		return &RecordEventResult{ActualWatchedSeconds: session.ActualWatchedSeconds}, nil
	}

	return &RecordEventResult{
		AutoCompleted:        autoCompleted,
		ActualWatchedSeconds: session.ActualWatchedSeconds,
	}, nil
}
