package systems

import (
	"time"

	"github.com/decker502/memory/pkg/components"
	"github.com/decker502/memory/pkg/ecs"
	"github.com/decker502/memory/pkg/game"
	"github.com/decker502/memory/pkg/utils"
)

// ShrinkAnimationSystem 配对成功后的缩小动画
//
// 进度由绝对经过时间计算（不是每帧递减），帧率波动不会改变动画总时长：
//
//	progress = max(0, 1 - (now - start) / duration)
type ShrinkAnimationSystem struct {
	round    *game.RoundState
	duration time.Duration
}

// NewShrinkAnimationSystem 创建缩小动画系统
func NewShrinkAnimationSystem(rs *game.RoundState, duration time.Duration) *ShrinkAnimationSystem {
	return &ShrinkAnimationSystem{
		round:    rs,
		duration: duration,
	}
}

// Update 更新所有槽位的缩放
// 返回本帧完成动画（变为 Matched）的槽位数
func (s *ShrinkAnimationSystem) Update(now time.Duration) int {
	em := s.round.EntityManager
	finished := 0

	for _, id := range s.round.Slots {
		card, ok := ecs.GetComponent[*components.CardComponent](em, id)
		if !ok {
			continue
		}
		scale, ok := ecs.GetComponent[*components.ScaleComponent](em, id)
		if !ok {
			continue
		}

		if !card.Shrinking {
			scale.SetUniform(1.0)
			continue
		}

		progress := s.Progress(now - card.AnimationStartTime)
		if progress <= 0 {
			// 终态：不再绘制，缩放值之后无意义
			card.Shrinking = false
			card.Matched = true
			scale.SetUniform(0)
			finished++
			continue
		}
		scale.SetUniform(progress)
	}

	return finished
}

// Progress 经过 elapsed 后的剩余比例（1 → 0 线性）
func (s *ShrinkAnimationSystem) Progress(elapsed time.Duration) float64 {
	t := utils.Clamp01(float64(elapsed) / float64(s.duration))
	return 1 - utils.EaseLinear(t)
}
