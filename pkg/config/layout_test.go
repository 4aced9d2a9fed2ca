package config

import "testing"

// TestLayout_Default 默认 4x4 网格的布局与原始 800x600 版式一致
func TestLayout_Default(t *testing.T) {
	cfg := Default()

	w, h := cfg.CardSize()
	if w != 108 || h != 144 {
		t.Errorf("card size: expected 108x144, got %dx%d", w, h)
	}

	gw, gh := cfg.GridSize()
	if gw != 447 || gh != 591 {
		t.Errorf("grid size: expected 447x591, got %dx%d", gw, gh)
	}

	ox, oy := cfg.GridOrigin()
	if ox != 176 || oy != 4 {
		t.Errorf("grid origin: expected (176, 4), got (%d, %d)", ox, oy)
	}
}

func TestSlotPosition(t *testing.T) {
	cfg := Default()

	tests := []struct {
		index int
		x, y  int
	}{
		{0, 176, 4},
		{1, 176 + 113, 4},
		{3, 176 + 3*113, 4},
		{4, 176, 4 + 149},
		{15, 176 + 3*113, 4 + 3*149},
	}

	for _, tt := range tests {
		x, y := cfg.SlotPosition(tt.index)
		if x != tt.x || y != tt.y {
			t.Errorf("slot %d: expected (%d, %d), got (%d, %d)", tt.index, tt.x, tt.y, x, y)
		}
	}
}
