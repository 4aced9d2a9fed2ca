package game

import (
	"testing"
	"time"

	"github.com/decker502/memory/pkg/components"
	"github.com/decker502/memory/pkg/ecs"
)

// newTestBoard 创建一排 pairs*2 个 10x10 槽位的测试牌桌
func newTestBoard(t *testing.T, pairs int, seed uint64) *RoundState {
	t.Helper()

	em := ecs.NewEntityManager()
	slots := make([]ecs.EntityID, pairs*2)
	for i := range slots {
		id := em.CreateEntity()
		em.AddComponent(id, &components.CardComponent{})
		em.AddComponent(id, &components.BoundsComponent{X: float64(i * 10), Width: 10, Height: 10})
		em.AddComponent(id, components.NewUniformScale(1.0))
		slots[i] = id
	}

	deck, err := NewDeck(testPool(), pairs, newTestRNG(seed))
	if err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}
	rs, err := NewRoundState(em, slots, deck)
	if err != nil {
		t.Fatalf("NewRoundState failed: %v", err)
	}
	return rs
}

func TestNewRoundState_DealsInGridOrder(t *testing.T) {
	rs := newTestBoard(t, 8, 5)

	cards := rs.Deck.Cards()
	for i, id := range rs.Slots {
		card, ok := rs.Card(id)
		if !ok {
			t.Fatalf("slot %d missing CardComponent", i)
		}
		if card.Identifier != cards[i] {
			t.Errorf("slot %d: expected %s, got %s", i, cards[i], card.Identifier)
		}
	}

	if rs.Round != 1 || rs.TurnCount != 0 || rs.SelectionCount() != 0 {
		t.Errorf("unexpected initial state: round=%d turns=%d selections=%d", rs.Round, rs.TurnCount, rs.SelectionCount())
	}
	if err := rs.CheckInvariants(); err != nil {
		t.Errorf("fresh board violates invariants: %v", err)
	}
}

func TestNewRoundState_RejectsMismatchedDeck(t *testing.T) {
	em := ecs.NewEntityManager()
	slots := []ecs.EntityID{em.CreateEntity(), em.CreateEntity(), em.CreateEntity()}
	deck, _ := NewDeck(testPool(), 2, newTestRNG(1))

	if _, err := NewRoundState(em, slots, deck); err == nil {
		t.Error("odd slot count should be rejected")
	}
	if _, err := NewRoundState(em, slots[:2], deck); err == nil {
		t.Error("deck of 4 cards for 2 slots should be rejected")
	}
}

func TestRoundState_DealClearsTransientState(t *testing.T) {
	rs := newTestBoard(t, 2, 9)

	for _, id := range rs.Slots {
		card, _ := rs.Card(id)
		card.Revealed = true
		card.Matched = true
		scale, _ := ecs.GetComponent[*components.ScaleComponent](rs.EntityManager, id)
		scale.SetUniform(0.25)
	}
	rs.TurnCount = 7
	rs.FirstSelection = rs.Slots[0]
	rs.RoundComplete = true
	rs.CompletedAt = 5 * time.Second

	if err := rs.Deal(); err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	for i, id := range rs.Slots {
		card, _ := rs.Card(id)
		if card.Revealed || card.Matched || card.Shrinking {
			t.Errorf("slot %d not cleared: %+v", i, *card)
		}
		scale, _ := ecs.GetComponent[*components.ScaleComponent](rs.EntityManager, id)
		if scale.ScaleX != 1.0 {
			t.Errorf("slot %d scale not reset: %v", i, scale.ScaleX)
		}
	}
	if rs.TurnCount != 0 || rs.SelectionCount() != 0 || rs.RoundComplete {
		t.Errorf("round state not cleared: turns=%d selections=%d complete=%v", rs.TurnCount, rs.SelectionCount(), rs.RoundComplete)
	}
}

func TestRoundState_AllMatched(t *testing.T) {
	rs := newTestBoard(t, 2, 1)
	if rs.AllMatched() {
		t.Fatal("fresh board should not be all matched")
	}

	for i, id := range rs.Slots {
		card, _ := rs.Card(id)
		card.Matched = true
		if i < len(rs.Slots)-1 && rs.AllMatched() {
			t.Fatalf("AllMatched true with only %d slots matched", i+1)
		}
	}
	if !rs.AllMatched() || rs.MatchedCount() != 4 {
		t.Errorf("expected all 4 matched, got AllMatched=%v count=%d", rs.AllMatched(), rs.MatchedCount())
	}
}

func TestRoundState_CheckInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rs *RoundState)
	}{
		{"matched and shrinking", func(rs *RoundState) {
			card, _ := rs.Card(rs.Slots[0])
			card.Matched, card.Shrinking = true, true
		}},
		{"second without first", func(rs *RoundState) {
			rs.SecondSelection = rs.Slots[1]
			rs.HasDeadline = true
		}},
		{"two selections without deadline", func(rs *RoundState) {
			rs.FirstSelection, rs.SecondSelection = rs.Slots[0], rs.Slots[1]
		}},
		{"deadline with one selection", func(rs *RoundState) {
			rs.FirstSelection = rs.Slots[0]
			rs.HasDeadline = true
		}},
		{"same slot twice", func(rs *RoundState) {
			rs.FirstSelection, rs.SecondSelection = rs.Slots[0], rs.Slots[0]
			rs.HasDeadline = true
		}},
		{"broken pairing", func(rs *RoundState) {
			card, _ := rs.Card(rs.Slots[0])
			card.Identifier = "joker"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := newTestBoard(t, 2, 3)
			tt.mutate(rs)
			if err := rs.CheckInvariants(); err == nil {
				t.Error("expected invariant violation")
			}
		})
	}
}

func TestSnapshot_IsValueCopy(t *testing.T) {
	rs := newTestBoard(t, 2, 4)

	first, _ := rs.Card(rs.Slots[0])
	first.Revealed = true
	second, _ := rs.Card(rs.Slots[1])
	second.Matched = true
	rs.TurnCount = 3

	snap := rs.Snapshot()
	if len(snap.Cards) != 4 || snap.TurnCount != 3 || snap.Round != 1 {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}

	if !snap.Cards[0].FaceUp || !snap.Cards[0].Visible {
		t.Errorf("revealed card should be visible face-up: %+v", snap.Cards[0])
	}
	if snap.Cards[1].Visible {
		t.Errorf("matched card should not be visible: %+v", snap.Cards[1])
	}
	if snap.Cards[2].FaceUp || snap.Cards[2].Scale != 1.0 || snap.Cards[2].Width != 10 || snap.Cards[2].X != 20 {
		t.Errorf("face-down card view wrong: %+v", snap.Cards[2])
	}

	// 修改实时状态不影响已取得的快照
	first.Revealed = false
	if !snap.Cards[0].FaceUp {
		t.Error("snapshot must not alias live state")
	}
}

func TestAssertInvariant(t *testing.T) {
	AssertInvariant(true, "never fires")
	if !strictInvariants {
		t.Skip("release build only logs invariant violations")
	}

	defer func() {
		if recover() == nil {
			t.Error("AssertInvariant(false) should panic in default builds")
		}
	}()
	AssertInvariant(false, "boom %d", 1)
}
