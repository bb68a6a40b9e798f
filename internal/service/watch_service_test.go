package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
	"malaka_backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Skill{},
		&model.Subskill{},
		&model.Lesson{},
		&model.LessonProgress{},
		&model.WatchSession{},
		&model.WatchEvent{},
	))
	return db
}

func newWatchService(t *testing.T, db *gorm.DB) *WatchService {
	t.Helper()
	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	sessionRepo := repository.NewWatchSessionRepository(db)
	progressSvc := NewProgressService(progressRepo, lessonRepo)
	return NewWatchService(sessionRepo, lessonRepo, progressSvc, db)
}

var lessonSeq int

func createLesson(t *testing.T, db *gorm.DB, duration *int) *model.Lesson {
	t.Helper()
	lessonSeq++
	lesson := &model.Lesson{
		Title:           "变量与类型",
		Slug:            fmt.Sprintf("variables-and-types-%d", lessonSeq),
		SubskillID:      1,
		DurationSeconds: duration,
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func intPtr(v int) *int { return &v }

func TestStartCreatesSessionWhenNoneExists(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))

	result, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, 0, result.LastPositionSeconds)

	var session model.WatchSession
	require.NoError(t, db.First(&session, "id = ?", result.SessionID).Error)
	assert.Nil(t, session.EndedAt)
	assert.Equal(t, 0, session.ActualWatchedSeconds)
}

func TestStartReturnsExistingOpenSession(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))

	first, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)
	second, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestStartLessonNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)

	_, err := svc.StartOrResume(1, 9999, nil)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestStartBackfillsDurationFirstReporterWins(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, nil)

	_, err := svc.StartOrResume(1, lesson.ID, intPtr(600))
	require.NoError(t, err)

	var got model.Lesson
	require.NoError(t, db.First(&got, lesson.ID).Error)
	require.NotNil(t, got.DurationSeconds)
	assert.Equal(t, 600, *got.DurationSeconds)

	// 第二个客户端上报不同的时长，不覆盖
	_, err = svc.StartOrResume(2, lesson.ID, intPtr(900))
	require.NoError(t, err)
	require.NoError(t, db.First(&got, lesson.ID).Error)
	assert.Equal(t, 600, *got.DurationSeconds)
}

func TestStartReopensWithinGraceWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))

	base := time.Now()
	svc.now = func() time.Time { return base }

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 0, nil)
	require.NoError(t, err)
	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventEnded, 40, nil)
	require.NoError(t, err)

	// 29分钟后回来，续用原会话且计数器保留
	svc.now = func() time.Time { return base.Add(29 * time.Minute) }
	resumed, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, started.SessionID, resumed.SessionID)
	assert.Equal(t, 40, resumed.LastPositionSeconds)

	var session model.WatchSession
	require.NoError(t, db.First(&session, "id = ?", resumed.SessionID).Error)
	assert.Nil(t, session.EndedAt)
	assert.Equal(t, 40, session.ActualWatchedSeconds)
}

func TestStartCreatesFreshSessionAfterGraceWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))

	base := time.Now()
	svc.now = func() time.Time { return base }

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)
	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 0, nil)
	require.NoError(t, err)
	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventEnded, 40, nil)
	require.NoError(t, err)

	// 31分钟后回来，新开会话，计数器归零
	svc.now = func() time.Time { return base.Add(31 * time.Minute) }
	fresh, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)
	assert.NotEqual(t, started.SessionID, fresh.SessionID)
	assert.Equal(t, 0, fresh.LastPositionSeconds)

	var session model.WatchSession
	require.NoError(t, db.First(&session, "id = ?", fresh.SessionID).Error)
	assert.Equal(t, 0, session.ActualWatchedSeconds)
}

func TestRecordEventRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, "rewind", 10, nil)
	assert.ErrorIs(t, err, util.ErrInvalidEventType)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, -5, nil)
	assert.ErrorIs(t, err, util.ErrNegativePosition)
}

func TestRecordEventOwnershipAnswersNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))
	other := createLesson(t, db, intPtr(600))

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	// 别人的会话、错配的课程、不存在的会话，一律 NotFound
	_, err = svc.RecordEvent(started.SessionID, 2, lesson.ID, model.EventPlay, 0, nil)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.RecordEvent(started.SessionID, 1, other.ID, model.EventPlay, 0, nil)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.RecordEvent("no-such-session", 1, lesson.ID, model.EventPlay, 0, nil)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestRecordEventUpdatesCountersAndProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 0, nil)
	require.NoError(t, err)
	result, err := svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPause, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, 30, result.ActualWatchedSeconds)

	var session model.WatchSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.Equal(t, 30, session.ActualWatchedSeconds)
	assert.Equal(t, 30, session.LastPositionSeconds)
	assert.Equal(t, 30, session.MaxReachedSeconds)
	assert.Nil(t, session.EndedAt)

	var progress model.LessonProgress
	require.NoError(t, db.First(&progress, "user_id = ? AND lesson_id = ?", 1, lesson.ID).Error)
	assert.Equal(t, 30, progress.WatchedSeconds)
	assert.False(t, progress.IsCompleted)
}

func TestTerminalEventClosesSessionButStillAcceptsWrites(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(600))

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 0, nil)
	require.NoError(t, err)
	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPageHidden, 25, nil)
	require.NoError(t, err)

	var session model.WatchSession
	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	require.NotNil(t, session.EndedAt)

	// 已关闭的会话仍接受迟到事件，且不会被重新打开
	result, err := svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventHeartbeat, 25, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, result.ActualWatchedSeconds)

	require.NoError(t, db.First(&session, "id = ?", started.SessionID).Error)
	assert.NotNil(t, session.EndedAt)
}

func TestAutoCompleteAtThresholdFiresOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(100))

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 0, nil)
	require.NoError(t, err)
	result, err := svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPause, 80, nil)
	require.NoError(t, err)
	assert.True(t, result.AutoCompleted)

	var progress model.LessonProgress
	require.NoError(t, db.First(&progress, "user_id = ? AND lesson_id = ?", 1, lesson.ID).Error)
	assert.True(t, progress.IsCompleted)

	// 继续看不再重复触发"新近完成"
	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 80, nil)
	require.NoError(t, err)
	result, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventEnded, 100, nil)
	require.NoError(t, err)
	assert.False(t, result.AutoCompleted)

	require.NoError(t, db.First(&progress, "user_id = ? AND lesson_id = ?", 1, lesson.ID).Error)
	assert.True(t, progress.IsCompleted)
}

func TestAutoCompleteJustBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, intPtr(100))

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 0, nil)
	require.NoError(t, err)
	result, err := svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPause, 79, nil)
	require.NoError(t, err)
	assert.False(t, result.AutoCompleted)
}

func TestNoAutoCompleteWithoutKnownDuration(t *testing.T) {
	db := newTestDB(t)
	svc := newWatchService(t, db)
	lesson := createLesson(t, db, nil)

	started, err := svc.StartOrResume(1, lesson.ID, nil)
	require.NoError(t, err)

	_, err = svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventPlay, 0, nil)
	require.NoError(t, err)
	result, err := svc.RecordEvent(started.SessionID, 1, lesson.ID, model.EventEnded, 3600, nil)
	require.NoError(t, err)
	assert.False(t, result.AutoCompleted)
}
