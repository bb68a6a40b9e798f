package repository

import (
	"errors"

	"gorm.io/gorm"

	"malaka_backend/internal/model"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Find(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	return &progress, err
}

// FindOrCreate 返回(用户,课程)的进度行，不存在则创建零值行
func (r *ProgressRepository) FindOrCreate(userID, lessonID uint) (*model.LessonProgress, error) {
	progress, err := r.Find(userID, lessonID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = &model.LessonProgress{UserID: userID, LessonID: lessonID}
	if err := r.DB.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *ProgressRepository) Save(progress *model.LessonProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.LessonProgress, error) {
	var progresses []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).
		Order("last_watched_at DESC").
		Find(&progresses).Error
	return progresses, err
}

// MapByLessons 拉取用户对一组课程的进度，key 为课程ID
func (r *ProgressRepository) MapByLessons(userID uint, lessonIDs []uint) (map[uint]model.LessonProgress, error) {
	var progresses []model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&progresses).Error
	if err != nil {
		return nil, err
	}

	progressMap := make(map[uint]model.LessonProgress, len(progresses))
	for _, p := range progresses {
		progressMap[p.LessonID] = p
	}
	return progressMap, nil
}
