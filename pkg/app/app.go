// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/memory/pkg/config"
	"github.com/decker502/memory/pkg/ecs"
	"github.com/decker502/memory/pkg/entities"
	"github.com/decker502/memory/pkg/game"
	"github.com/decker502/memory/pkg/scenes"
	"github.com/decker502/memory/pkg/systems"
	"github.com/decker502/memory/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "memory"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Game 已校验的游戏配置
	Game *config.GameConfig
	// CardSource 卡牌图片目录，为 nil 时使用程序生成的卡面
	CardSource fs.FS
	// Procedural 即使有图片目录也使用程序生成的卡面
	Procedural bool
	// Seed 洗牌种子，0 表示按当前时间
	Seed uint64
	// Fullscreen 强制全屏启动（否则使用保存的设置）
	Fullscreen bool
	// Settings 为 nil 时打开默认的 gdata 存储
	Settings *game.SettingsManager
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.GameConfig
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	resources    *game.ResourceManager
	clock        game.Clock
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 返回的错误都是启动期的致命错误（卡面不足、缺少卡背等）。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.Game == nil {
		cfg.Game = config.Default()
	}

	gameCfg := cfg.Game
	cw, ch := gameCfg.CardSize()
	resources := game.NewResourceManager(cfg.CardSource, gameCfg.Assets.Back, cw, ch)

	pool, err := loadCardPool(resources, cfg)
	if err != nil {
		return nil, err
	}

	seed := ResolveSeed(cfg.Seed)
	log.Printf("[App] Seed: %d", seed)

	rs, err := entities.NewBoard(ecs.NewEntityManager(), gameCfg, pool, NewRNG(seed))
	if err != nil {
		return nil, fmt.Errorf("牌桌创建失败: %w", err)
	}
	engine := systems.NewMatchEngine(rs, gameCfg)

	settings := cfg.Settings
	if settings == nil {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
		if dir := utils.GetStoragePath(); dir != "" {
			log.Printf("[App] Storage: %s", dir)
		}
		settings = game.OpenSettingsManager(AppName)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(engine, resources, gameCfg.Window.Width, gameCfg.Window.Height))

	a := &App{
		cfg:          gameCfg,
		sceneManager: sceneManager,
		settings:     settings,
		resources:    resources,
		clock:        game.NewMonotonicClock(),
		verbose:      cfg.Verbose,
	}
	if cfg.Fullscreen {
		settings.Settings().Fullscreen = true
	}
	return a, nil
}

// loadCardPool 加载卡面并返回可用的标识符
func loadCardPool(resources *game.ResourceManager, cfg Config) ([]string, error) {
	identifiers := cfg.Game.Identifiers()

	if cfg.Procedural || cfg.CardSource == nil {
		return resources.GenerateProceduralCards(identifiers), nil
	}

	pool, err := resources.LoadCardImages(identifiers)
	if err != nil {
		return nil, fmt.Errorf("卡牌资源加载失败: %w", err)
	}
	return pool, nil
}

// ResolveSeed 0 表示使用当前时间
func ResolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// NewRNG 由种子创建确定性的随机源
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// ApplyWindowSettings 设置窗口尺寸、标题、TPS、图标和全屏状态
// 必须在 ebiten.RunGame 之前调用
func (a *App) ApplyWindowSettings() {
	ebiten.SetTPS(a.cfg.Window.TPS)
	if utils.IsMobile() {
		return
	}

	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if icon := a.resources.WindowIcon(); icon != nil {
		ebiten.SetWindowIcon([]image.Image{icon})
	}
	if a.settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（配置中的 TPS）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏并保存
	if utils.IsFullscreenToggleJustPressed() {
		fullscreen := a.settings.ToggleFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		}
		log.Printf("[App] Fullscreen: %v", fullscreen)
	}

	return a.sceneManager.Update(a.clock.Now())
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时 letterbox 区域填充黑色，使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// ResolveCardSource 选择卡牌图片来源
//
// 顺序：磁盘目录 dir（存在时）→ 内置 data/cards → nil（程序生成卡面）
func ResolveCardSource(dir string, embeddedCards fs.FS) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			log.Printf("[App] Card images from %s", dir)
			return os.DirFS(dir)
		}
		log.Printf("[App] Card directory %s not found", dir)
	}
	if embeddedCards != nil {
		log.Printf("[App] Card images from embedded data")
		return embeddedCards
	}
	log.Printf("[App] No card images, using procedural faces")
	return nil
}
