package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
)

// CompletionThreshold 观看时长达到课程时长的这个比例即自动标记完成
const CompletionThreshold = 0.8

// ProgressService 维护 LessonProgress：观看秒数镜像、自动完成判定、手动标记完成
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
	}
}

// SyncWatchProgress 把会话的观看秒数写进进度行（跨会话最后写入者生效），
// 然后判定自动完成。返回是否"新近完成"，已完成的课程不会重复触发。
func (s *ProgressService) SyncWatchProgress(session *model.WatchSession) (bool, error) {
	lesson, err := s.LessonRepo.FindByID(session.LessonID)
	if err != nil {
		return false, err
	}

	progress, err := s.ProgressRepo.FindOrCreate(session.UserID, session.LessonID)
	if err != nil {
		return false, err
	}

	progress.WatchedSeconds = session.ActualWatchedSeconds
	progress.LastWatchedAt = time.Now()

	newlyCompleted := s.shouldAutoComplete(session, lesson) && !progress.IsCompleted
	if newlyCompleted {
		progress.IsCompleted = true
	}

	if err := s.ProgressRepo.Save(progress); err != nil {
		return false, err
	}
	return newlyCompleted, nil
}

// shouldAutoComplete 课程时长未知时无法判定阈值，一律不完成
func (s *ProgressService) shouldAutoComplete(session *model.WatchSession, lesson *model.Lesson) bool {
	if lesson.DurationSeconds == nil || *lesson.DurationSeconds == 0 {
		return false
	}
	return float64(session.ActualWatchedSeconds) >= CompletionThreshold*float64(*lesson.DurationSeconds)
}

// MarkComplete 用户手动标记完成，幂等；和自动完成同样只允许 false→true
func (s *ProgressService) MarkComplete(userID, lessonID uint) (*model.LessonProgress, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	progress, err := s.ProgressRepo.FindOrCreate(userID, lessonID)
	if err != nil {
		return nil, err
	}

	if !progress.IsCompleted {
		progress.IsCompleted = true
		if err := s.ProgressRepo.Save(progress); err != nil {
			return nil, err
		}
	}
	return progress, nil
}

func (s *ProgressService) ListByUser(userID uint) ([]model.LessonProgress, error) {
	return s.ProgressRepo.ListByUser(userID)
}
