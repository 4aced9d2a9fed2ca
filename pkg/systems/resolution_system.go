package systems

import (
	"log"
	"time"

	"github.com/decker502/memory/pkg/game"
)

// ResolutionSystem 延迟判定
//
// 判定时间保存在 RoundState.ResolveDeadline，每帧轮询比较，
// 不使用回调或定时器：整个核心保持单线程，测试时直接注入时间戳。
type ResolutionSystem struct {
	round *game.RoundState
}

// NewResolutionSystem 创建判定系统
func NewResolutionSystem(rs *game.RoundState) *ResolutionSystem {
	return &ResolutionSystem{round: rs}
}

// Update 每帧调用一次（在动画系统之前），now 必须单调不减
//
// 到达判定时间后：
//   - 配对成功：两张牌进入缩小动画（Revealed 保持 true，缩小的是正面）
//   - 配对失败：两张牌翻回背面
//
// 无论结果如何都清空选择状态。返回本帧是否发生了判定。
func (s *ResolutionSystem) Update(now time.Duration) bool {
	rs := s.round
	if !rs.HasDeadline || now < rs.ResolveDeadline {
		return false
	}

	game.AssertInvariant(rs.SelectionCount() == 2,
		"resolving with %d selection(s)", rs.SelectionCount())

	first, okFirst := rs.Card(rs.FirstSelection)
	second, okSecond := rs.Card(rs.SecondSelection)
	if !okFirst || !okSecond {
		rs.ClearSelection()
		return true
	}

	if rs.PendingIsMatch {
		game.AssertInvariant(first.Identifier == second.Identifier,
			"shrinking non-matching pair %s/%s", first.Identifier, second.Identifier)

		first.Shrinking = true
		first.AnimationStartTime = now
		second.Shrinking = true
		second.AnimationStartTime = now
		log.Printf("[ResolutionSystem] 配对成功: %s", first.Identifier)
	} else {
		first.Revealed = false
		second.Revealed = false
		log.Printf("[ResolutionSystem] 配对失败: %s / %s，翻回", first.Identifier, second.Identifier)
	}

	rs.ClearSelection()
	return true
}
