// Package watchtime 从播放事件流重算真实观看秒数。
//
// 真实观看秒数既不是视频时长也不是挂机时长：只有 play 到下一个
// pause/seek/ended/page_hidden 之间的正向位移才计入。
package watchtime

import (
	"math"

	"malaka_backend/internal/model"
)

// Reconstruct 对按 created_at 升序排列的完整事件序列做一次纯重算。
//
// 维护一个可选的播放锚点：
//   - play 把锚点移到事件位置（播放中再次 play 视为拖动后继续，旧区间丢弃）
//   - pause/seek/ended/page_hidden 在有锚点时结算 position-anchor，
//     负位移（播放器自行回跳）不计入，然后清除锚点
//   - heartbeat/speed_change 只做在线心跳，不开关区间
//
// 对同一序列重复调用结果一致，调用方每收到一条新事件就全量重算，
// 以换取对漂移和重复累计问题的免疫。
func Reconstruct(events []model.WatchEvent) int {
	var total float64
	var anchor float64
	anchored := false

	for _, ev := range events {
		switch ev.EventType {
		case model.EventPlay:
			anchor = float64(ev.PositionSeconds)
			anchored = true
		case model.EventPause, model.EventSeek, model.EventEnded, model.EventPageHidden:
			if !anchored {
				continue
			}
			if delta := float64(ev.PositionSeconds) - anchor; delta > 0 {
				total += delta
			}
			anchored = false
		}
	}

	return int(math.Floor(total))
}
