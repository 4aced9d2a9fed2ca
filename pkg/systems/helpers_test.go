package systems

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/decker502/memory/pkg/components"
	"github.com/decker502/memory/pkg/ecs"
	"github.com/decker502/memory/pkg/game"
)

const (
	testSlotSize = 100.0
	testSlotStep = 110.0
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// newTestRound 创建一排槽位，按给定顺序放置标识符
// 每个标识符必须恰好出现两次
func newTestRound(t *testing.T, identifiers ...string) *game.RoundState {
	t.Helper()

	em := ecs.NewEntityManager()
	slots := make([]ecs.EntityID, len(identifiers))
	for i := range identifiers {
		id := em.CreateEntity()
		em.AddComponent(id, &components.BoundsComponent{X: float64(i) * testSlotStep, Y: 0, Width: testSlotSize, Height: testSlotSize})
		em.AddComponent(id, &components.CardComponent{})
		em.AddComponent(id, components.NewUniformScale(1.0))
		slots[i] = id
	}

	deck, err := game.NewDeck(identifiers, len(identifiers)/2, rand.New(rand.NewPCG(42, 7)))
	if err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}
	rs, err := game.NewRoundState(em, slots, deck)
	if err != nil {
		t.Fatalf("NewRoundState failed: %v", err)
	}

	// 覆盖随机发牌，固定布局便于断言
	for i, id := range rs.Slots {
		card, _ := rs.Card(id)
		card.Identifier = identifiers[i]
	}
	if err := rs.CheckInvariants(); err != nil {
		t.Fatalf("test layout violates invariants: %v", err)
	}
	return rs
}

// slotCenter 返回第 index 个测试槽位的中心
func slotCenter(index int) (float64, float64) {
	return float64(index)*testSlotStep + testSlotSize/2, testSlotSize / 2
}

func clickSlot(s *SelectionSystem, index int, now time.Duration) bool {
	x, y := slotCenter(index)
	return s.HandleClick(x, y, now)
}

func cardAt(t *testing.T, rs *game.RoundState, index int) *components.CardComponent {
	t.Helper()
	card, ok := rs.Card(rs.Slots[index])
	if !ok {
		t.Fatalf("slot %d has no CardComponent", index)
	}
	return card
}

func scaleAt(t *testing.T, rs *game.RoundState, index int) float64 {
	t.Helper()
	scale, ok := ecs.GetComponent[*components.ScaleComponent](rs.EntityManager, rs.Slots[index])
	if !ok {
		t.Fatalf("slot %d has no ScaleComponent", index)
	}
	return scale.ScaleX
}

// selectionState 选择相关字段的快照，用于"状态未改变"断言
type selectionState struct {
	First, Second ecs.EntityID
	Deadline      time.Duration
	HasDeadline   bool
	PendingMatch  bool
	Turns         int
}

func captureSelection(rs *game.RoundState) selectionState {
	return selectionState{
		First:        rs.FirstSelection,
		Second:       rs.SecondSelection,
		Deadline:     rs.ResolveDeadline,
		HasDeadline:  rs.HasDeadline,
		PendingMatch: rs.PendingIsMatch,
		Turns:        rs.TurnCount,
	}
}

// expectPanic 在严格构建下断言 fn 触发不变量 panic
func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	if !game.StrictInvariants() {
		t.Skip("release build only logs invariant violations")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected invariant panic")
		}
	}()
	fn()
}

func ecsID(n int) ecs.EntityID {
	return ecs.EntityID(n)
}
