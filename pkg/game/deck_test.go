package game

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func testPool() []string {
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	suits := []string{"C", "D", "H", "S"}
	pool := make([]string, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			pool = append(pool, r+s)
		}
	}
	return pool
}

// countIdentifiers 统计多重集合
func countIdentifiers(cards []string) map[string]int {
	counts := make(map[string]int)
	for _, c := range cards {
		counts[c]++
	}
	return counts
}

// TestNewDeck_PairingInvariant 每个选中的标识符恰好出现两次
func TestNewDeck_PairingInvariant(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		deck, err := NewDeck(testPool(), 8, newTestRNG(seed))
		if err != nil {
			t.Fatalf("seed %d: NewDeck failed: %v", seed, err)
		}

		cards := deck.Cards()
		if len(cards) != 16 {
			t.Fatalf("seed %d: expected 16 cards, got %d", seed, len(cards))
		}

		counts := countIdentifiers(cards)
		if len(counts) != 8 {
			t.Errorf("seed %d: expected 8 distinct identifiers, got %d", seed, len(counts))
		}
		for id, n := range counts {
			if n != 2 {
				t.Errorf("seed %d: identifier %s appears %d times", seed, id, n)
			}
		}

		chosen := deck.Chosen()
		sort.Strings(chosen)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if diff := cmp.Diff(chosen, keys); diff != "" {
			t.Errorf("seed %d: chosen vs dealt mismatch (-chosen +dealt):\n%s", seed, diff)
		}
	}
}

// TestNewDeck_NotEnoughIdentifiers 候选不足时返回致命配置错误
func TestNewDeck_NotEnoughIdentifiers(t *testing.T) {
	// 重复项只计一次：3 个不同标识符
	pool := []string{"2C", "2C", "3C", "4C", "3C"}

	_, err := NewDeck(pool, 4, newTestRNG(1))
	if !errors.Is(err, ErrNotEnoughIdentifiers) {
		t.Fatalf("expected ErrNotEnoughIdentifiers, got %v", err)
	}

	// 恰好够用
	deck, err := NewDeck(pool, 3, newTestRNG(1))
	if err != nil {
		t.Fatalf("3 distinct identifiers should satisfy 3 pairs: %v", err)
	}
	if deck.PairCount() != 3 {
		t.Errorf("expected 3 pairs, got %d", deck.PairCount())
	}
}

func TestNewDeck_InvalidArguments(t *testing.T) {
	if _, err := NewDeck(testPool(), 0, newTestRNG(1)); err == nil {
		t.Error("zero pairs should be rejected")
	}
	if _, err := NewDeck(testPool(), 2, nil); err == nil {
		t.Error("nil rng should be rejected")
	}
}

// TestDeck_ReshuffleKeepsChosen 重新洗牌不重新选牌
func TestDeck_ReshuffleKeepsChosen(t *testing.T) {
	deck, err := NewDeck(testPool(), 8, newTestRNG(7))
	if err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}

	before := deck.Cards()
	chosenBefore := deck.Chosen()

	changed := false
	for i := 0; i < 10; i++ {
		deck.Reshuffle()
		after := deck.Cards()

		if diff := cmp.Diff(countIdentifiers(before), countIdentifiers(after)); diff != "" {
			t.Fatalf("reshuffle changed the multiset (-before +after):\n%s", diff)
		}
		if !cmp.Equal(before, after) {
			changed = true
		}
	}

	if !changed {
		t.Error("10 reshuffles never changed the layout")
	}
	if diff := cmp.Diff(chosenBefore, deck.Chosen()); diff != "" {
		t.Errorf("chosen identifiers changed (-before +after):\n%s", diff)
	}
}

// TestDeck_CopiesAreIndependent 返回副本，修改不影响牌组
func TestDeck_CopiesAreIndependent(t *testing.T) {
	deck, _ := NewDeck(testPool(), 2, newTestRNG(3))

	cards := deck.Cards()
	cards[0] = "XX"
	chosen := deck.Chosen()
	chosen[0] = "YY"

	if deck.Cards()[0] == "XX" || deck.Chosen()[0] == "YY" {
		t.Error("Cards()/Chosen() must return copies")
	}
}

// TestNewDeck_DoesNotMutatePool 候选池不被修改
func TestNewDeck_DoesNotMutatePool(t *testing.T) {
	pool := testPool()
	original := append([]string(nil), pool...)

	if _, err := NewDeck(pool, 8, newTestRNG(11)); err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}
	if diff := cmp.Diff(original, pool); diff != "" {
		t.Errorf("pool was mutated (-want +got):\n%s", diff)
	}
}
