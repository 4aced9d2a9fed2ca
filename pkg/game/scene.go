package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可以被 SceneManager 驱动的画面
type Scene interface {
	// Update 推进一帧，now 为单调时钟读数
	Update(now time.Duration) error

	// Draw 绘制到 screen（只读取状态，不修改）
	Draw(screen *ebiten.Image)
}

// Clock 单调时钟
type Clock interface {
	Now() time.Duration
}

// MonotonicClock 从创建时刻开始计时（time.Since 使用单调读数）
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建从现在开始计时的时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now 自创建以来经过的时间
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock 手动推进的时钟，用于测试和无窗口模拟
type ManualClock struct {
	now time.Duration
}

// Now 当前时间
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance 前进 d（负值被忽略，保持单调）
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}
