package watchtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"malaka_backend/internal/model"
)

func ev(t model.WatchEventType, pos int) model.WatchEvent {
	return model.WatchEvent{EventType: t, PositionSeconds: pos, CreatedAt: time.Now()}
}

func TestReconstructExampleTrace(t *testing.T) {
	// play@0 → pause@30 结算30秒，play@30 → seek@50 结算20秒
	events := []model.WatchEvent{
		ev(model.EventPlay, 0),
		ev(model.EventPause, 30),
		ev(model.EventPlay, 30),
		ev(model.EventSeek, 50),
	}
	assert.Equal(t, 50, Reconstruct(events))
}

func TestReconstructEmpty(t *testing.T) {
	assert.Equal(t, 0, Reconstruct(nil))
	assert.Equal(t, 0, Reconstruct([]model.WatchEvent{}))
}

func TestReconstructStrayPauseWithoutPlay(t *testing.T) {
	assert.Equal(t, 0, Reconstruct([]model.WatchEvent{ev(model.EventPause, 10)}))
}

func TestReconstructNegativeDeltaIgnored(t *testing.T) {
	// 播放器未发 seek 事件直接回跳：区间贡献为0，观看时间永不为负
	events := []model.WatchEvent{
		ev(model.EventPlay, 100),
		ev(model.EventPause, 40),
	}
	assert.Equal(t, 0, Reconstruct(events))
}

func TestReconstructDoublePlayMovesAnchor(t *testing.T) {
	// 播放中再次 play 移动锚点，被丢弃的区间不计入
	events := []model.WatchEvent{
		ev(model.EventPlay, 0),
		ev(model.EventPlay, 60),
		ev(model.EventPause, 70),
	}
	assert.Equal(t, 10, Reconstruct(events))
}

func TestReconstructHeartbeatAndSpeedChangeIgnored(t *testing.T) {
	events := []model.WatchEvent{
		ev(model.EventPlay, 0),
		ev(model.EventHeartbeat, 5),
		ev(model.EventSpeedChange, 8),
		ev(model.EventHeartbeat, 12),
		ev(model.EventPause, 15),
	}
	assert.Equal(t, 15, Reconstruct(events))
}

func TestReconstructEndedClosesInterval(t *testing.T) {
	events := []model.WatchEvent{
		ev(model.EventPlay, 10),
		ev(model.EventEnded, 95),
	}
	assert.Equal(t, 85, Reconstruct(events))

	events = []model.WatchEvent{
		ev(model.EventPlay, 10),
		ev(model.EventPageHidden, 40),
	}
	assert.Equal(t, 30, Reconstruct(events))
}

func TestReconstructSeekClearsAnchor(t *testing.T) {
	// seek 结算并清锚，之后的 pause 没有锚点，不再计入
	events := []model.WatchEvent{
		ev(model.EventPlay, 0),
		ev(model.EventSeek, 20),
		ev(model.EventPause, 90),
	}
	assert.Equal(t, 20, Reconstruct(events))
}

func TestReconstructIdempotent(t *testing.T) {
	events := []model.WatchEvent{
		ev(model.EventPlay, 0),
		ev(model.EventPause, 30),
		ev(model.EventPlay, 30),
		ev(model.EventHeartbeat, 45),
		ev(model.EventSeek, 50),
		ev(model.EventPlay, 120),
		ev(model.EventEnded, 180),
	}
	first := Reconstruct(events)
	second := Reconstruct(events)
	assert.Equal(t, first, second)
	assert.Equal(t, 110, first)
}

func TestReconstructMonotonicUnderForwardPlayback(t *testing.T) {
	// 正向播放时追加事件，观看总量单调不减
	events := []model.WatchEvent{ev(model.EventPlay, 0)}
	prev := Reconstruct(events)

	appendEvents := []model.WatchEvent{
		ev(model.EventHeartbeat, 10),
		ev(model.EventPause, 20),
		ev(model.EventPlay, 20),
		ev(model.EventSeek, 35),
		ev(model.EventPlay, 35),
		ev(model.EventEnded, 60),
	}
	for _, e := range appendEvents {
		events = append(events, e)
		got := Reconstruct(events)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 60, prev)
}
