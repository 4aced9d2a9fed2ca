package game

import (
	"fmt"
	"time"

	"github.com/decker502/memory/pkg/components"
	"github.com/decker502/memory/pkg/ecs"
)

// RoundState 整个牌桌的状态
//
// 由一个所有者持有，通过构造参数显式传给各个系统，不存在全局变量。
// 任意时刻恰好处于以下三种状态之一：
//   - 无选择
//   - 已选一张
//   - 已选两张，等待判定（HasDeadline = true）
type RoundState struct {
	// EntityManager 存放槽位实体（CardComponent / BoundsComponent / ScaleComponent）
	EntityManager *ecs.EntityManager

	// Slots 固定的槽位序列（行优先），跨局不变
	Slots []ecs.EntityID

	// Deck 本局牌组；重新开局时只洗牌
	Deck *Deck

	// FirstSelection / SecondSelection 按实体身份引用，InvalidEntity 表示空
	FirstSelection  ecs.EntityID
	SecondSelection ecs.EntityID

	// ResolveDeadline 判定生效时间，仅当 HasDeadline 时有效
	ResolveDeadline time.Duration
	HasDeadline     bool

	// PendingIsMatch 待判定的两张牌是否相同，仅当 HasDeadline 时有效
	PendingIsMatch bool

	// TurnCount 本局完成的翻牌回合数（每选满两张 +1）
	TurnCount int

	// Round 当前局数（从 1 开始，仅内存中保存）
	Round int

	// RoundComplete 全部配对完成，等待确认/暂停结束后重新开局
	RoundComplete bool
	CompletedAt   time.Duration

	// Acknowledged 调用方提前确认了胜利横幅
	Acknowledged bool
}

// NewRoundState 创建牌桌状态并按牌组顺序发牌
func NewRoundState(em *ecs.EntityManager, slots []ecs.EntityID, deck *Deck) (*RoundState, error) {
	if len(slots)%2 != 0 {
		return nil, fmt.Errorf("slot count must be even, got %d", len(slots))
	}
	if deck == nil || deck.PairCount()*2 != len(slots) {
		return nil, fmt.Errorf("deck does not fit %d slots", len(slots))
	}

	rs := &RoundState{
		EntityManager: em,
		Slots:         append([]ecs.EntityID(nil), slots...),
		Deck:          deck,
		Round:         1,
	}
	if err := rs.Deal(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Card 获取槽位的卡牌组件
func (rs *RoundState) Card(id ecs.EntityID) (*components.CardComponent, bool) {
	return ecs.GetComponent[*components.CardComponent](rs.EntityManager, id)
}

// Deal 把牌组当前序列按网格顺序分配到槽位，并清空所有瞬时状态
// 不改变 Round；重新洗牌由调用方负责
func (rs *RoundState) Deal() error {
	cards := rs.Deck.Cards()
	if len(cards) != len(rs.Slots) {
		return fmt.Errorf("deck has %d cards for %d slots", len(cards), len(rs.Slots))
	}

	for i, id := range rs.Slots {
		card, ok := rs.Card(id)
		if !ok {
			return fmt.Errorf("slot %d (entity %d) has no CardComponent", i, id)
		}
		card.ResetForDeal(cards[i])

		if scale, ok := ecs.GetComponent[*components.ScaleComponent](rs.EntityManager, id); ok {
			scale.SetUniform(1.0)
		}
	}

	rs.ClearSelection()
	rs.TurnCount = 0
	rs.RoundComplete = false
	rs.CompletedAt = 0
	rs.Acknowledged = false
	return nil
}

// SelectionCount 当前选中的牌数（0/1/2）
func (rs *RoundState) SelectionCount() int {
	n := 0
	if rs.FirstSelection != ecs.InvalidEntity {
		n++
	}
	if rs.SecondSelection != ecs.InvalidEntity {
		n++
	}
	return n
}

// HasPendingResolution 是否有一对牌在等待判定
func (rs *RoundState) HasPendingResolution() bool {
	return rs.HasDeadline
}

// ClearSelection 清空选择、判定时间和待判定标志
func (rs *RoundState) ClearSelection() {
	rs.FirstSelection = ecs.InvalidEntity
	rs.SecondSelection = ecs.InvalidEntity
	rs.ResolveDeadline = 0
	rs.HasDeadline = false
	rs.PendingIsMatch = false
}

// AllMatched 所有槽位是否都已配对
func (rs *RoundState) AllMatched() bool {
	for _, id := range rs.Slots {
		card, ok := rs.Card(id)
		if !ok || !card.Matched {
			return false
		}
	}
	return true
}

// MatchedCount 已配对的槽位数
func (rs *RoundState) MatchedCount() int {
	n := 0
	for _, id := range rs.Slots {
		if card, ok := rs.Card(id); ok && card.Matched {
			n++
		}
	}
	return n
}

// CheckInvariants 校验牌桌不变量，返回第一个违反项
//
// 检查项：
//   - Matched 与 Shrinking 互斥
//   - 选择状态只能是 0 / 1 / 2(待判定) 三种之一
//   - 每个标识符恰好出现两次
func (rs *RoundState) CheckInvariants() error {
	counts := make(map[string]int, len(rs.Slots)/2)
	for i, id := range rs.Slots {
		card, ok := rs.Card(id)
		if !ok {
			return fmt.Errorf("slot %d has no CardComponent", i)
		}
		if card.Matched && card.Shrinking {
			return fmt.Errorf("slot %d is both matched and shrinking", i)
		}
		counts[card.Identifier]++
	}
	for identifier, n := range counts {
		if n != 2 {
			return fmt.Errorf("identifier %q appears %d times", identifier, n)
		}
	}

	switch {
	case rs.FirstSelection == ecs.InvalidEntity && rs.SecondSelection != ecs.InvalidEntity:
		return fmt.Errorf("second selection set without first selection")
	case rs.SecondSelection != ecs.InvalidEntity && !rs.HasDeadline:
		return fmt.Errorf("two selections without a resolve deadline")
	case rs.SecondSelection == ecs.InvalidEntity && rs.HasDeadline:
		return fmt.Errorf("resolve deadline set with %d selection(s)", rs.SelectionCount())
	case rs.FirstSelection != ecs.InvalidEntity && rs.FirstSelection == rs.SecondSelection:
		return fmt.Errorf("first and second selection are the same slot")
	}
	return nil
}
