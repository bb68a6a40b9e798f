package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
)

func newCatalogService(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCatalogService(
		repository.NewSkillRepository(db),
		repository.NewLessonRepository(db),
		repository.NewProgressRepository(db),
		nil,
	)
	return svc, db
}

func seedCatalog(t *testing.T, db *gorm.DB) (*model.Skill, *model.Subskill, []model.Lesson) {
	t.Helper()

	skill := &model.Skill{Title: "Go 语言", Slug: "golang", Order: 1}
	require.NoError(t, db.Create(skill).Error)

	subskill := &model.Subskill{Title: "基础", Slug: "basics", SkillID: skill.ID, Order: 1}
	require.NoError(t, db.Create(subskill).Error)

	lessons := []model.Lesson{
		{Title: "入门", Slug: "intro", SubskillID: subskill.ID, Order: 1},
		{Title: "变量", Slug: "variables", SubskillID: subskill.ID, Order: 2},
		{Title: "函数", Slug: "functions", SubskillID: subskill.ID, Order: 3},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return skill, subskill, lessons
}

func TestGetSkillTreeWithoutCache(t *testing.T) {
	svc, db := newCatalogService(t)
	seedCatalog(t, db)

	skills, err := svc.GetSkillTree(context.Background())
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.Len(t, skills[0].Subskills, 1)
	assert.Len(t, skills[0].Subskills[0].Lessons, 3)
}

func TestGetSubskillLessonsAnnotatesProgress(t *testing.T) {
	svc, db := newCatalogService(t)
	_, _, lessons := seedCatalog(t, db)

	require.NoError(t, db.Create(&model.LessonProgress{
		UserID: 1, LessonID: lessons[1].ID, WatchedSeconds: 42,
	}).Error)

	items, err := svc.GetSubskillLessons("golang", "basics", 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Nil(t, items[0].Progress)
	require.NotNil(t, items[1].Progress)
	assert.Equal(t, 42, items[1].Progress.WatchedSeconds)
}

func TestGetSubskillLessonsUnknownSlugs(t *testing.T) {
	svc, db := newCatalogService(t)
	seedCatalog(t, db)

	_, err := svc.GetSubskillLessons("no-such-skill", "basics", 1)
	assert.ErrorIs(t, err, util.ErrSkillNotFound)

	_, err = svc.GetSubskillLessons("golang", "no-such-subskill", 1)
	assert.ErrorIs(t, err, util.ErrSubskillNotFound)
}

func TestGetLessonDetailNavigationAndProgressRow(t *testing.T) {
	svc, db := newCatalogService(t)
	seedCatalog(t, db)

	detail, err := svc.GetLessonDetail("golang", "basics", "variables", 1)
	require.NoError(t, err)

	require.NotNil(t, detail.PrevLesson)
	require.NotNil(t, detail.NextLesson)
	assert.Equal(t, "intro", detail.PrevLesson.Slug)
	assert.Equal(t, "functions", detail.NextLesson.Slug)

	// 首次访问自动建零值进度行
	assert.Equal(t, uint(1), detail.Progress.UserID)
	assert.False(t, detail.Progress.IsCompleted)

	first, err := svc.GetLessonDetail("golang", "basics", "intro", 1)
	require.NoError(t, err)
	assert.Nil(t, first.PrevLesson)

	_, err = svc.GetLessonDetail("golang", "basics", "missing", 1)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
