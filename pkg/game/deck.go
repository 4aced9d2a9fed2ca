package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrNotEnoughIdentifiers 可用的不同卡面少于所需对数（启动时致命错误）
var ErrNotEnoughIdentifiers = errors.New("not enough distinct card identifiers")

// Deck 一局使用的牌组
//
// 从候选池中无放回地选出 P 个不同标识符，每个复制一份，
// 洗牌得到长度 2P 的序列。重新开局时只重新洗牌，不重新选牌：
// 同一批牌，不同位置。
type Deck struct {
	chosen []string
	cards  []string
	rng    *rand.Rand
}

// NewDeck 从 pool 中选出 pairCount 个不同标识符并洗牌
//
// 参数：
//   - pool: 候选标识符（重复项只计一次）
//   - pairCount: 需要的对数 P
//   - rng: 随机源，测试中传入固定种子
//
// 返回：
//   - error: pool 中不同标识符少于 P 时返回 ErrNotEnoughIdentifiers
func NewDeck(pool []string, pairCount int, rng *rand.Rand) (*Deck, error) {
	if pairCount <= 0 {
		return nil, fmt.Errorf("pair count must be positive, got %d", pairCount)
	}
	if rng == nil {
		return nil, fmt.Errorf("deck requires a random source")
	}

	distinct := uniqueIdentifiers(pool)
	if len(distinct) < pairCount {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughIdentifiers, pairCount, len(distinct))
	}

	// 无放回抽样：打乱后取前 P 个
	rng.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})
	chosen := distinct[:pairCount:pairCount]

	d := &Deck{
		chosen: chosen,
		cards:  make([]string, 0, pairCount*2),
		rng:    rng,
	}
	d.cards = append(d.cards, chosen...)
	d.cards = append(d.cards, chosen...)
	d.Reshuffle()
	return d, nil
}

// Reshuffle 重新洗牌（保持已选标识符不变）
func (d *Deck) Reshuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Cards 返回当前洗好的序列（副本）
func (d *Deck) Cards() []string {
	out := make([]string, len(d.cards))
	copy(out, d.cards)
	return out
}

// Chosen 返回本局选中的 P 个标识符（副本）
func (d *Deck) Chosen() []string {
	out := make([]string, len(d.chosen))
	copy(out, d.chosen)
	return out
}

// PairCount 对数
func (d *Deck) PairCount() int {
	return len(d.chosen)
}

// uniqueIdentifiers 去重并保持首次出现顺序
func uniqueIdentifiers(pool []string) []string {
	seen := make(map[string]struct{}, len(pool))
	out := make([]string, 0, len(pool))
	for _, id := range pool {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
