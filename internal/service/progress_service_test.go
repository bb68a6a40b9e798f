package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
)

func newProgressService(t *testing.T) (*ProgressService, *model.Lesson) {
	t.Helper()
	db := newTestDB(t)
	svc := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
	)
	return svc, createLesson(t, db, intPtr(300))
}

func TestMarkCompleteIdempotent(t *testing.T) {
	svc, lesson := newProgressService(t)

	progress, err := svc.MarkComplete(1, lesson.ID)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)

	again, err := svc.MarkComplete(1, lesson.ID)
	require.NoError(t, err)
	assert.True(t, again.IsCompleted)
	assert.Equal(t, progress.ID, again.ID)
}

func TestMarkCompleteLessonNotFound(t *testing.T) {
	svc, _ := newProgressService(t)

	_, err := svc.MarkComplete(1, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestMarkCompleteDoesNotTouchWatchedSeconds(t *testing.T) {
	svc, lesson := newProgressService(t)

	progress, err := svc.ProgressRepo.FindOrCreate(1, lesson.ID)
	require.NoError(t, err)
	progress.WatchedSeconds = 120
	require.NoError(t, svc.ProgressRepo.Save(progress))

	marked, err := svc.MarkComplete(1, lesson.ID)
	require.NoError(t, err)
	assert.True(t, marked.IsCompleted)
	assert.Equal(t, 120, marked.WatchedSeconds)
}

func TestListByUserOnlyOwnRows(t *testing.T) {
	svc, lesson := newProgressService(t)

	_, err := svc.MarkComplete(1, lesson.ID)
	require.NoError(t, err)
	_, err = svc.MarkComplete(2, lesson.ID)
	require.NoError(t, err)

	rows, err := svc.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].UserID)
}
