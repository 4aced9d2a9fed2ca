package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 用户偏好（跨启动保存）
// 分数和局数不持久化
type Settings struct {
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置（窗口模式）
func DefaultSettings() *Settings {
	return &Settings{}
}

// SettingsManager 设置的加载与保存
//
// gdataManager 为 nil 时进入降级模式：设置只保存在内存中。
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *Settings
}

const (
	settingsObject   = "settings"
	settingsProperty = "user"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败只记录警告，使用默认值
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// OpenSettingsManager 打开 appName 的 gdata 存储
// 存储不可用时返回降级模式的管理器
func OpenSettingsManager(appName string) *SettingsManager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] gdata unavailable: %v, settings will not persist", err)
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(m)
}

// Load 从 gdata 读取设置；不存在时使用默认值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded: fullscreen=%v", loaded.Fullscreen)
	return nil
}

// Save 写回 gdata；降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings 当前设置
func (sm *SettingsManager) Settings() *Settings {
	return sm.settings
}

// Persistent 设置是否会写入磁盘
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// ToggleFullscreen 切换全屏并立即保存，返回新的状态
func (sm *SettingsManager) ToggleFullscreen() bool {
	sm.settings.Fullscreen = !sm.settings.Fullscreen
	if err := sm.Save(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	return sm.settings.Fullscreen
}
