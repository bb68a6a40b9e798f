package repository

import (
	"gorm.io/gorm"

	"malaka_backend/internal/model"
)

type NoteRepository struct {
	DB *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) Find(userID, lessonID uint) (*model.Note, error) {
	var note model.Note
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&note).Error
	return &note, err
}

func (r *NoteRepository) Save(note *model.Note) error {
	return r.DB.Save(note).Error
}

func (r *NoteRepository) Delete(userID, lessonID uint) error {
	return r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).Delete(&model.Note{}).Error
}
