package repository

import (
	"gorm.io/gorm"

	"malaka_backend/internal/model"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindBySlug(subskillID uint, slug string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("subskill_id = ? AND slug = ?", subskillID, slug).First(&lesson).Error
	return &lesson, err
}

func (r *LessonRepository) ListBySubskill(subskillID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("subskill_id = ?", subskillID).Order("`order` ASC").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

// SetDurationIfUnset 先到先得地回填课程时长，已有值的行不受影响
func (r *LessonRepository) SetDurationIfUnset(lessonID uint, seconds int) error {
	return r.DB.Model(&model.Lesson{}).
		Where("id = ? AND (duration_seconds IS NULL OR duration_seconds = 0)", lessonID).
		Update("duration_seconds", seconds).
		Error
}
