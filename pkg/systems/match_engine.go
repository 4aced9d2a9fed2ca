package systems

import (
	"time"

	"github.com/decker502/memory/pkg/config"
	"github.com/decker502/memory/pkg/game"
)

// FrameResult 一帧内发生的状态变化，用于日志和测试
type FrameResult struct {
	Selections int  // 改变了选择状态的点击数
	Resolved   bool // 本帧完成了一次判定
	Finished   int  // 本帧完成缩小动画的槽位数
	Reset      bool // 本帧重新发牌
}

// MatchEngine 按固定顺序驱动每一帧：
// 输入 → 判定 → 缩小动画 → 局生命周期
type MatchEngine struct {
	round *game.RoundState

	selectionSystem  *SelectionSystem
	resolutionSystem *ResolutionSystem
	animationSystem  *ShrinkAnimationSystem
	lifecycleSystem  *RoundLifecycleSystem
}

// NewMatchEngine 为牌桌创建全部核心系统
func NewMatchEngine(rs *game.RoundState, cfg *config.GameConfig) *MatchEngine {
	return &MatchEngine{
		round:            rs,
		selectionSystem:  NewSelectionSystem(rs, cfg.ResolutionDelay()),
		resolutionSystem: NewResolutionSystem(rs),
		animationSystem:  NewShrinkAnimationSystem(rs, cfg.AnimationDuration()),
		lifecycleSystem:  NewRoundLifecycleSystem(rs, cfg.RoundCompletePause()),
	}
}

// Step 推进一帧
// clicks 按发生顺序处理；now 必须单调不减
func (e *MatchEngine) Step(clicks []ClickEvent, now time.Duration) FrameResult {
	var result FrameResult

	for _, c := range clicks {
		if e.selectionSystem.HandleClick(c.X, c.Y, c.At) {
			result.Selections++
		}
	}
	result.Resolved = e.resolutionSystem.Update(now)
	result.Finished = e.animationSystem.Update(now)
	result.Reset = e.lifecycleSystem.CheckAndMaybeReset(now)

	if err := e.round.CheckInvariants(); err != nil {
		game.AssertInvariant(false, "%v", err)
	}
	return result
}

// Acknowledge 确认胜利横幅（提前结束暂停）
func (e *MatchEngine) Acknowledge() {
	e.lifecycleSystem.Acknowledge()
}

// Snapshot 当前牌桌快照
func (e *MatchEngine) Snapshot() game.BoardSnapshot {
	return e.round.Snapshot()
}

// Round 返回牌桌状态
func (e *MatchEngine) Round() *game.RoundState {
	return e.round
}
