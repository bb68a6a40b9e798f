package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrSubskillNotFound   = errors.New("subskill not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrSessionNotFound    = errors.New("watch session not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrInvalidEventType   = errors.New("unrecognized event type")
	ErrNegativePosition   = errors.New("position must be non-negative")
)
