package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
)

func newNoteService(t *testing.T) (*NoteService, *model.Lesson, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.Note{}))
	svc := NewNoteService(
		repository.NewNoteRepository(db),
		repository.NewLessonRepository(db),
	)
	return svc, createLesson(t, db, nil), db
}

func TestSaveNoteCreatesThenOverwrites(t *testing.T) {
	svc, lesson, db := newNoteService(t)

	note, err := svc.SaveNote(1, lesson.ID, "# 第一版")
	require.NoError(t, err)
	assert.Equal(t, "# 第一版", note.Content)

	updated, err := svc.SaveNote(1, lesson.ID, "# 第二版")
	require.NoError(t, err)
	assert.Equal(t, note.ID, updated.ID)

	var count int64
	require.NoError(t, db.Model(&model.Note{}).Where("user_id = ? AND lesson_id = ?", 1, lesson.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveNoteLessonNotFound(t *testing.T) {
	svc, _, _ := newNoteService(t)

	_, err := svc.SaveNote(1, 9999, "内容")
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestGetNoteRendersMarkdown(t *testing.T) {
	svc, lesson, _ := newNoteService(t)

	_, err := svc.SaveNote(1, lesson.ID, "**重点**")
	require.NoError(t, err)

	view, err := svc.GetNote(1, lesson.ID)
	require.NoError(t, err)
	assert.Contains(t, view.ContentHTML, "<strong>重点</strong>")
}

func TestGetNoteNotFound(t *testing.T) {
	svc, lesson, _ := newNoteService(t)

	_, err := svc.GetNote(1, lesson.ID)
	assert.ErrorIs(t, err, util.ErrNoteNotFound)
}
