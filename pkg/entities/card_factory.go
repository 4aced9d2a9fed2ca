package entities

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/decker502/memory/pkg/components"
	"github.com/decker502/memory/pkg/config"
	"github.com/decker502/memory/pkg/ecs"
	"github.com/decker502/memory/pkg/game"
)

// NewCardEntity 创建一个卡牌槽位实体
//
// 组件：
//   - BoundsComponent: 槽位矩形（之后不再改变）
//   - CardComponent: 卡面状态（标识符在发牌时写入）
//   - ScaleComponent: 缩小动画进度，初始 1.0
func NewCardEntity(em *ecs.EntityManager, x, y, width, height float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.BoundsComponent{X: x, Y: y, Width: width, Height: height})
	em.AddComponent(id, &components.CardComponent{})
	em.AddComponent(id, components.NewUniformScale(1.0))
	return id
}

// CreateCardGrid 按配置的网格布局创建全部槽位（行优先）
func CreateCardGrid(em *ecs.EntityManager, cfg *config.GameConfig) []ecs.EntityID {
	cw, ch := cfg.CardSize()
	slots := make([]ecs.EntityID, 0, cfg.TotalSlots())
	for i := 0; i < cfg.TotalSlots(); i++ {
		x, y := cfg.SlotPosition(i)
		slots = append(slots, NewCardEntity(em, float64(x), float64(y), float64(cw), float64(ch)))
	}
	return slots
}

// NewBoard 创建完整的牌桌：槽位网格 + 牌组 + 首次发牌
//
// 参数：
//   - pool: 可用的卡面标识符（通常是成功加载了图片的那些）
//   - rng: 随机源
//
// 返回：
//   - error: 可用标识符不足时包装 game.ErrNotEnoughIdentifiers
func NewBoard(em *ecs.EntityManager, cfg *config.GameConfig, pool []string, rng *rand.Rand) (*game.RoundState, error) {
	deck, err := game.NewDeck(pool, cfg.PairCount(), rng)
	if err != nil {
		return nil, fmt.Errorf("failed to build deck for %dx%d grid: %w", cfg.Grid.Rows, cfg.Grid.Cols, err)
	}

	slots := CreateCardGrid(em, cfg)
	rs, err := game.NewRoundState(em, slots, deck)
	if err != nil {
		return nil, err
	}

	log.Printf("[CardFactory] 创建 %dx%d 牌桌，%d 对牌: %v", cfg.Grid.Rows, cfg.Grid.Cols, deck.PairCount(), deck.Chosen())
	return rs, nil
}
