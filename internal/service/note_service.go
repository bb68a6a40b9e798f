package service

import (
	"errors"

	"gorm.io/gorm"

	"malaka_backend/internal/model"
	"malaka_backend/internal/repository"
	"malaka_backend/internal/util"
)

// NoteService 每人每课一条 Markdown 笔记
type NoteService struct {
	NoteRepo   *repository.NoteRepository
	LessonRepo *repository.LessonRepository
}

func NewNoteService(noteRepo *repository.NoteRepository, lessonRepo *repository.LessonRepository) *NoteService {
	return &NoteService{
		NoteRepo:   noteRepo,
		LessonRepo: lessonRepo,
	}
}

type NoteView struct {
	Note        model.Note `json:"note"`
	ContentHTML string     `json:"contentHtml"`
}

func (s *NoteService) GetNote(userID, lessonID uint) (*NoteView, error) {
	note, err := s.NoteRepo.Find(userID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNoteNotFound
		}
		return nil, err
	}

	html, err := util.RenderMarkdown(note.Content)
	if err != nil {
		return nil, err
	}
	return &NoteView{Note: *note, ContentHTML: html}, nil
}

// SaveNote 存在则覆盖内容，不存在则新建
func (s *NoteService) SaveNote(userID, lessonID uint, content string) (*model.Note, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	note, err := s.NoteRepo.Find(userID, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		note = &model.Note{UserID: userID, LessonID: lessonID}
	}

	note.Content = content
	if err := s.NoteRepo.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteNote(userID, lessonID uint) error {
	return s.NoteRepo.Delete(userID, lessonID)
}
