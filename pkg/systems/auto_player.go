package systems

import (
	"time"

	"github.com/decker502/memory/pkg/ecs"
	"github.com/decker502/memory/pkg/game"
)

// AutoPlayer 完美记忆的自动玩家（用于无窗口模拟和集成测试）
//
// 只读取快照：正面朝上时记住标识符，此后优先点已知的配对，
// 否则翻一张没见过的牌。
type AutoPlayer struct {
	memory map[ecs.EntityID]string
}

// NewAutoPlayer 创建自动玩家
func NewAutoPlayer() *AutoPlayer {
	return &AutoPlayer{memory: make(map[ecs.EntityID]string)}
}

// Observe 记住所有正面朝上的牌；新一局开始时清空记忆
func (p *AutoPlayer) Observe(snap game.BoardSnapshot, reset bool) {
	if reset {
		p.memory = make(map[ecs.EntityID]string)
	}
	for _, c := range snap.Cards {
		if c.Visible && c.FaceUp {
			p.memory[c.ID] = c.Identifier
		}
	}
}

// NextClick 选择下一次点击；没有可点的牌或正在判定时返回 false
func (p *AutoPlayer) NextClick(snap game.BoardSnapshot, now time.Duration) (ClickEvent, bool) {
	if snap.PendingResolution || snap.RoundComplete {
		return ClickEvent{}, false
	}

	var selected *game.CardView
	candidates := make([]game.CardView, 0, len(snap.Cards))
	for i := range snap.Cards {
		c := snap.Cards[i]
		if !c.Visible {
			continue
		}
		if c.FaceUp {
			if !c.Shrinking {
				selected = &snap.Cards[i]
			}
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return ClickEvent{}, false
	}

	target := p.choose(selected, candidates)
	x := target.X + target.Width/2
	y := target.Y + target.Height/2
	return ClickEvent{X: x, Y: y, At: now}, true
}

func (p *AutoPlayer) choose(selected *game.CardView, candidates []game.CardView) game.CardView {
	if selected != nil {
		// 已翻开一张：找记忆中的另一半
		for _, c := range candidates {
			if id, ok := p.memory[c.ID]; ok && id == selected.Identifier {
				return c
			}
		}
	} else {
		// 记忆中已有完整的一对
		seen := make(map[string]game.CardView)
		for _, c := range candidates {
			id, ok := p.memory[c.ID]
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				return seen[id]
			}
			seen[id] = c
		}
	}

	for _, c := range candidates {
		if _, known := p.memory[c.ID]; !known {
			return c
		}
	}
	return candidates[0]
}
