package model

import (
	"time"

	"gorm.io/datatypes"
)

type WatchEventType string

const (
	EventPlay        WatchEventType = "play"
	EventPause       WatchEventType = "pause"
	EventSeek        WatchEventType = "seek"
	EventEnded       WatchEventType = "ended"
	EventSpeedChange WatchEventType = "speed_change"
	EventPageHidden  WatchEventType = "page_hidden"
	EventHeartbeat   WatchEventType = "heartbeat"
)

var watchEventTypes = map[WatchEventType]bool{
	EventPlay:        true,
	EventPause:       true,
	EventSeek:        true,
	EventEnded:       true,
	EventSpeedChange: true,
	EventPageHidden:  true,
	EventHeartbeat:   true,
}

func (t WatchEventType) Valid() bool {
	return watchEventTypes[t]
}

// IsTerminal ended 和 page_hidden 会关闭会话
func (t WatchEventType) IsTerminal() bool {
	return t == EventEnded || t == EventPageHidden
}

// WatchSession 一次连续（或续接）的观看，EndedAt 为空表示会话仍打开
// 同一(用户,课程)同时最多一个打开的会话
// swagger:model WatchSession
type WatchSession struct {
	UUIDBase
	UserID               uint       `gorm:"index:idx_watch_user_lesson" json:"userId"`
	LessonID             uint       `gorm:"index:idx_watch_user_lesson" json:"lessonId"`
	StartedAt            time.Time  `json:"startedAt"`
	EndedAt              *time.Time `gorm:"index" json:"endedAt"`
	LastPositionSeconds  int        `gorm:"default:0" json:"lastPositionSeconds"`
	ActualWatchedSeconds int        `gorm:"default:0" json:"actualWatchedSeconds"`
	MaxReachedSeconds    int        `gorm:"default:0" json:"maxReachedSeconds"`
}

func (WatchSession) TableName() string {
	return "watch_sessions"
}

// WatchEvent 客户端上报的一条播放事件，只追加不修改
// CreatedAt 由服务端赋值并作为重算排序依据，客户端时间戳一律不信任
// swagger:model WatchEvent
type WatchEvent struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID       string            `gorm:"type:varchar(36);index;not null" json:"sessionId"`
	Session         *WatchSession     `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	EventType       WatchEventType    `gorm:"type:varchar(20);not null" json:"eventType"`
	PositionSeconds int               `gorm:"default:0" json:"positionSeconds"`
	CreatedAt       time.Time         `json:"createdAt"`
	Metadata        datatypes.JSONMap `json:"metadata"`
}

func (WatchEvent) TableName() string {
	return "watch_events"
}
