package scenes

import (
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/memory/pkg/game"
	"github.com/decker502/memory/pkg/systems"
	"github.com/decker502/memory/pkg/utils"
)

// GameScene 牌桌场景
//
// Update 收集本帧输入并驱动 MatchEngine；Draw 只读取最近一次快照。
type GameScene struct {
	engine *systems.MatchEngine

	cardRenderSystem *systems.CardRenderSystem
	hudRenderSystem  *systems.HUDRenderSystem

	snapshot game.BoardSnapshot
	now      time.Duration
}

// NewGameScene 创建牌桌场景
//
// 参数：
//   - engine: 已发好牌的核心引擎
//   - resources: 卡牌图片和字体
//   - width, height: 逻辑屏幕尺寸
func NewGameScene(engine *systems.MatchEngine, resources *game.ResourceManager, width, height int) *GameScene {
	return &GameScene{
		engine:           engine,
		cardRenderSystem: systems.NewCardRenderSystem(resources),
		hudRenderSystem:  systems.NewHUDRenderSystem(resources, width, height),
		snapshot:         engine.Snapshot(),
	}
}

// Update 读取 Ebitengine 输入并推进一帧
func (s *GameScene) Update(now time.Duration) error {
	s.Step(utils.JustPressedPoints(), utils.IsAcknowledgeJustPressed(), now)
	return nil
}

// Step 用给定输入推进一帧（不依赖 Ebitengine 输入状态）
//
// 胜利横幅显示期间，任何点击或确认键都只用于关闭横幅。
func (s *GameScene) Step(points []image.Point, acknowledge bool, now time.Duration) systems.FrameResult {
	var clicks []systems.ClickEvent
	if s.snapshot.RoundComplete {
		if acknowledge {
			s.engine.Acknowledge()
		}
	} else {
		clicks = make([]systems.ClickEvent, 0, len(points))
		for _, p := range points {
			clicks = append(clicks, systems.ClickEvent{X: float64(p.X), Y: float64(p.Y), At: now})
		}
	}

	result := s.engine.Step(clicks, now)
	if result.Reset {
		log.Printf("[GameScene] 新一局开始 (round %d)", s.engine.Round().Round)
	}

	s.snapshot = s.engine.Snapshot()
	s.now = now
	return result
}

// Snapshot 最近一帧的快照
func (s *GameScene) Snapshot() game.BoardSnapshot {
	return s.snapshot
}

// Draw 绘制背景、卡牌和 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.hudRenderSystem.DrawBackground(screen)
	s.cardRenderSystem.Draw(screen, s.snapshot)
	s.hudRenderSystem.Draw(screen, s.snapshot, s.now)
}
