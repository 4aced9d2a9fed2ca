package app

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/memory/pkg/config"
	"github.com/decker502/memory/pkg/ecs"
	"github.com/decker502/memory/pkg/entities"
	"github.com/decker502/memory/pkg/game"
	"github.com/decker502/memory/pkg/systems"
)

// RoundStats 一局的模拟结果
type RoundStats struct {
	Round    int
	Turns    int
	Duration time.Duration // 从发牌到重新开局（含横幅停留）
}

// maxSimulatedFrames 防止模拟在异常状态下无限运行
const maxSimulatedFrames = 10_000_000

// Simulate 无窗口运行 rounds 局，由完美记忆的自动玩家操作
//
// 时间由 ManualClock 按每帧 1/TPS 推进，结果只取决于配置和种子。
func Simulate(cfg *config.GameConfig, rounds int, seed uint64) ([]RoundStats, error) {
	if rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", rounds)
	}

	rs, err := entities.NewBoard(ecs.NewEntityManager(), cfg, cfg.Identifiers(), NewRNG(seed))
	if err != nil {
		return nil, fmt.Errorf("牌桌创建失败: %w", err)
	}
	engine := systems.NewMatchEngine(rs, cfg)
	player := systems.NewAutoPlayer()

	frame := time.Second / time.Duration(cfg.Window.TPS)
	var clock game.ManualClock
	var roundStart time.Duration
	stats := make([]RoundStats, 0, rounds)
	reset := false

	for i := 0; len(stats) < rounds; i++ {
		if i >= maxSimulatedFrames {
			return stats, fmt.Errorf("simulation stalled after %d frames", i)
		}

		now := clock.Now()
		snap := engine.Snapshot()
		player.Observe(snap, reset)

		var clicks []systems.ClickEvent
		if click, ok := player.NextClick(snap, now); ok {
			clicks = append(clicks, click)
		}

		result := engine.Step(clicks, now)
		reset = result.Reset
		if result.Reset {
			stats = append(stats, RoundStats{
				Round:    snap.Round,
				Turns:    snap.TurnCount,
				Duration: now - roundStart,
			})
			log.Printf("[Simulate] round %d: %d turns", snap.Round, snap.TurnCount)
			roundStart = now
		}
		clock.Advance(frame)
	}
	return stats, nil
}
