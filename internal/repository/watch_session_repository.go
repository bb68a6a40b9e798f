package repository

import (
	"gorm.io/gorm"

	"malaka_backend/internal/model"
)

type WatchSessionRepository struct {
	DB *gorm.DB
}

func NewWatchSessionRepository(db *gorm.DB) *WatchSessionRepository {
	return &WatchSessionRepository{DB: db}
}

func (r *WatchSessionRepository) Create(session *model.WatchSession) error {
	return r.DB.Create(session).Error
}

func (r *WatchSessionRepository) Save(session *model.WatchSession) error {
	return r.DB.Save(session).Error
}

// FindOpen 查找(用户,课程)当前打开的会话（ended_at 为空）
func (r *WatchSessionRepository) FindOpen(userID, lessonID uint) (*model.WatchSession, error) {
	var session model.WatchSession
	err := r.DB.
		Where("user_id = ? AND lesson_id = ? AND ended_at IS NULL", userID, lessonID).
		Order("started_at DESC").
		First(&session).Error
	return &session, err
}

// FindLastEnded 查找(用户,课程)最近关闭的会话，用于宽限期内续接
func (r *WatchSessionRepository) FindLastEnded(userID, lessonID uint) (*model.WatchSession, error) {
	var session model.WatchSession
	err := r.DB.
		Where("user_id = ? AND lesson_id = ? AND ended_at IS NOT NULL", userID, lessonID).
		Order("ended_at DESC").
		First(&session).Error
	return &session, err
}

// FindOwned 按会话ID查找，并校验归属；不区分"不存在"和"不属于该用户"
func (r *WatchSessionRepository) FindOwned(sessionID string, userID, lessonID uint) (*model.WatchSession, error) {
	var session model.WatchSession
	err := r.DB.
		Where("id = ? AND user_id = ? AND lesson_id = ?", sessionID, userID, lessonID).
		First(&session).Error
	return &session, err
}

// Reopen 清除 ended_at，把关闭的会话重新打开
func (r *WatchSessionRepository) Reopen(session *model.WatchSession) error {
	session.EndedAt = nil
	return r.DB.Model(session).Update("ended_at", nil).Error
}

func (r *WatchSessionRepository) AppendEvent(event *model.WatchEvent) error {
	return r.DB.Create(event).Error
}

// ListEvents 按服务端时间戳升序返回会话全部事件，时间相同按自增ID定序
func (r *WatchSessionRepository) ListEvents(sessionID string) ([]model.WatchEvent, error) {
	var events []model.WatchEvent
	err := r.DB.
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}
