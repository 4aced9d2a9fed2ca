package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理当前活动的场景
// 任意时刻只有一个场景的 Update/Draw 会被调用
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建没有活动场景的管理器，使用 SwitchTo 设置初始场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	log.Printf("[SceneManager] 切换场景: %T", scene)
	sm.currentScene = scene
}

// CurrentScene 当前场景，没有时返回 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前场景；没有场景时什么也不做
func (sm *SceneManager) Update(now time.Duration) error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update(now)
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
