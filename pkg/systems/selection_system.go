package systems

import (
	"log"
	"time"

	"github.com/decker502/memory/pkg/components"
	"github.com/decker502/memory/pkg/ecs"
	"github.com/decker502/memory/pkg/game"
)

// ClickEvent 一次指针点击（鼠标或触摸）
type ClickEvent struct {
	X, Y float64
	At   time.Duration // 点击发生时刻（单调时钟）
}

// SelectionSystem 翻牌回合状态机：处理点击、记录选择、安排延迟判定
type SelectionSystem struct {
	round           *game.RoundState
	resolutionDelay time.Duration
}

// NewSelectionSystem 创建选择系统
// resolutionDelay: 第二张牌翻开到判定生效的延迟
func NewSelectionSystem(rs *game.RoundState, resolutionDelay time.Duration) *SelectionSystem {
	return &SelectionSystem{
		round:           rs,
		resolutionDelay: resolutionDelay,
	}
}

// HandleClick 处理一次点击
//
// 以下情况均为静默忽略（非错误）：
//   - 有一对牌正在等待判定
//   - 本局已完成、等待重新开局
//   - 没有点中可选的槽位（已翻开/已配对/正在缩小）
//   - 再次点击已选中的第一张牌
//
// 返回选择状态是否发生变化
func (s *SelectionSystem) HandleClick(x, y float64, now time.Duration) bool {
	rs := s.round

	// 判定期间屏蔽输入，防止选第三张
	if rs.HasDeadline || rs.RoundComplete {
		return false
	}

	id, card := s.hitTest(x, y)
	if card == nil {
		return false
	}

	if rs.FirstSelection == ecs.InvalidEntity {
		rs.FirstSelection = id
		card.Revealed = true
		log.Printf("[SelectionSystem] 第一张: %s (entity %d)", card.Identifier, id)
		return true
	}

	// 身份比较：两个槽位可以有相同标识符但不是同一槽位
	if id == rs.FirstSelection {
		return false
	}

	first, ok := rs.Card(rs.FirstSelection)
	game.AssertInvariant(ok, "first selection %d has no CardComponent", rs.FirstSelection)
	if !ok {
		rs.ClearSelection()
		return false
	}

	rs.SecondSelection = id
	card.Revealed = true
	rs.TurnCount++
	rs.PendingIsMatch = first.Identifier == card.Identifier
	rs.ResolveDeadline = now + s.resolutionDelay
	rs.HasDeadline = true

	log.Printf("[SelectionSystem] 第二张: %s (entity %d), 回合 %d, 配对=%v",
		card.Identifier, id, rs.TurnCount, rs.PendingIsMatch)
	return true
}

// hitTest 查找包含该点且可选择的槽位
func (s *SelectionSystem) hitTest(x, y float64) (ecs.EntityID, *components.CardComponent) {
	em := s.round.EntityManager
	for _, id := range s.round.Slots {
		bounds, ok := ecs.GetComponent[*components.BoundsComponent](em, id)
		if !ok || !bounds.Contains(x, y) {
			continue
		}
		card, ok := ecs.GetComponent[*components.CardComponent](em, id)
		if !ok || !card.IsSelectable() {
			continue
		}
		return id, card
	}
	return ecs.InvalidEntity, nil
}
