package systems

import (
	"log"
	"time"

	"github.com/decker502/memory/pkg/game"
)

// RoundLifecycleSystem 检测整局完成并重新开局
//
// 全部配对后进入 RoundComplete（胜利横幅），核心从不阻塞：
// 暂停结束或调用方确认后，在下一次检查时洗牌重发。
type RoundLifecycleSystem struct {
	round *game.RoundState
	pause time.Duration
}

// NewRoundLifecycleSystem 创建局生命周期系统
// pause: 胜利横幅停留时间，0 表示立即重新开局
func NewRoundLifecycleSystem(rs *game.RoundState, pause time.Duration) *RoundLifecycleSystem {
	return &RoundLifecycleSystem{
		round: rs,
		pause: pause,
	}
}

// CheckAndMaybeReset 每帧在动画系统之后调用
// 返回本次调用是否重新发牌
func (s *RoundLifecycleSystem) CheckAndMaybeReset(now time.Duration) bool {
	rs := s.round

	if !rs.RoundComplete {
		if !rs.AllMatched() {
			return false
		}
		rs.RoundComplete = true
		rs.CompletedAt = now
		log.Printf("[RoundLifecycle] 第 %d 局完成，用了 %d 回合", rs.Round, rs.TurnCount)
	}

	if s.pause > 0 && !rs.Acknowledged && now < rs.CompletedAt+s.pause {
		return false
	}

	game.AssertInvariant(rs.AllMatched(), "resetting round %d before all slots are matched", rs.Round)

	rs.Deck.Reshuffle()
	if err := rs.Deal(); err != nil {
		game.AssertInvariant(false, "re-deal failed: %v", err)
		return false
	}
	rs.Round++

	log.Printf("[RoundLifecycle] 开始第 %d 局", rs.Round)
	return true
}

// Acknowledge 调用方确认胜利横幅，下一次检查时立即重新开局
// 本局未完成时无效
func (s *RoundLifecycleSystem) Acknowledge() {
	if s.round.RoundComplete {
		s.round.Acknowledged = true
	}
}
