package game

import (
	"time"

	"github.com/decker502/memory/pkg/components"
	"github.com/decker502/memory/pkg/ecs"
)

// CardView 渲染一个槽位所需的全部信息（值拷贝）
type CardView struct {
	ID ecs.EntityID

	// 槽位原始矩形
	X, Y, Width, Height float64

	Identifier string

	// FaceUp 绘制正面（Revealed，包括缩小动画期间）；否则绘制背面
	FaceUp bool

	// Visible 为 false 时（已配对）完全不绘制
	Visible bool

	// Shrinking 正在播放缩小动画
	Shrinking bool

	// Scale 以槽位中心为基准的等比缩放
	Scale float64
}

// BoardSnapshot 一帧的牌桌快照
// 渲染层只读取快照，不持有对实时状态的引用
type BoardSnapshot struct {
	Cards             []CardView
	TurnCount         int
	Round             int
	RoundComplete     bool
	CompletedAt       time.Duration // 仅当 RoundComplete 时有效
	PendingResolution bool
}

// Snapshot 生成当前牌桌的快照
func (rs *RoundState) Snapshot() BoardSnapshot {
	snap := BoardSnapshot{
		Cards:             make([]CardView, 0, len(rs.Slots)),
		TurnCount:         rs.TurnCount,
		Round:             rs.Round,
		RoundComplete:     rs.RoundComplete,
		CompletedAt:       rs.CompletedAt,
		PendingResolution: rs.HasDeadline,
	}

	for _, id := range rs.Slots {
		card, ok := rs.Card(id)
		if !ok {
			continue
		}
		view := CardView{
			ID:         id,
			Identifier: card.Identifier,
			FaceUp:     card.ShowsFace(),
			Visible:    !card.Matched,
			Shrinking:  card.Shrinking,
			Scale:      1.0,
		}
		if b, ok := ecs.GetComponent[*components.BoundsComponent](rs.EntityManager, id); ok {
			view.X, view.Y, view.Width, view.Height = b.X, b.Y, b.Width, b.Height
		}
		if s, ok := ecs.GetComponent[*components.ScaleComponent](rs.EntityManager, id); ok {
			view.Scale = s.ScaleX
		}
		snap.Cards = append(snap.Cards, view)
	}
	return snap
}
