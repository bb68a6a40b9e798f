package model

import (
	"time"
)

// Lesson 课程，内嵌YouTube视频
// DurationSeconds 允许为空：首个会话上报的时长或后台探测结果会惰性回填（先到先得）
// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title           string `gorm:"size:255;not null" json:"title"`
	Slug            string `gorm:"size:255;index:idx_subskill_slug,unique" json:"slug"`
	Description     string `gorm:"type:text" json:"description"`
	SubskillID      uint   `gorm:"index:idx_subskill_slug,unique;index" json:"subskillId"`
	YoutubeVideoID  string `gorm:"size:20" json:"youtubeVideoId"`
	VideoURL        string `gorm:"size:255" json:"videoUrl"`
	DurationSeconds *int   `json:"durationSeconds"`
	Order           int    `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Note 用户对某节课的笔记，每人每课一条
// swagger:model Note
type Note struct {
	BaseModel
	UserID   uint   `gorm:"index:idx_user_lesson_note,unique" json:"userId"`
	LessonID uint   `gorm:"index:idx_user_lesson_note,unique" json:"lessonId"`
	Content  string `gorm:"type:text" json:"content"`
}

func (Note) TableName() string {
	return "notes"
}

// LessonProgress 每个(用户,课程)唯一的完成记录
// IsCompleted 只允许 false→true，一经完成本子系统不再回退
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID         uint      `gorm:"index:idx_user_lesson,unique" json:"userId"`
	LessonID       uint      `gorm:"index:idx_user_lesson,unique" json:"lessonId"`
	IsCompleted    bool      `gorm:"default:false" json:"isCompleted"`
	WatchedSeconds int       `gorm:"default:0" json:"watchedSeconds"`
	LastWatchedAt  time.Time `json:"lastWatchedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progresses"
}
