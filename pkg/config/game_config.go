package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置文件内容不合法（校验失败）
var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig 游戏配置（对应 data/config.yaml）
//
// 结构：
//
//	window: {width, height, title, tps}
//	grid:   {rows, cols, gap}
//	card:   {width, height, scale}
//	timing: {animation_duration_ms, resolution_delay_ms, round_complete_pause_ms}
//	assets: {card_dir, back, ranks, suits}
type GameConfig struct {
	Window WindowConfig `yaml:"window"`
	Grid   GridConfig   `yaml:"grid"`
	Card   CardConfig   `yaml:"card"`
	Timing TimingConfig `yaml:"timing"`
	Assets AssetsConfig `yaml:"assets"`
}

// WindowConfig 窗口与逻辑屏幕
type WindowConfig struct {
	Width  int    `yaml:"width" validate:"gt=0"`
	Height int    `yaml:"height" validate:"gt=0"`
	Title  string `yaml:"title" validate:"required"`
	TPS    int    `yaml:"tps" validate:"gt=0,lte=240"` // 每秒逻辑帧数
}

// GridConfig 卡牌网格
type GridConfig struct {
	Rows int `yaml:"rows" validate:"gt=0"`
	Cols int `yaml:"cols" validate:"gt=0"`
	Gap  int `yaml:"gap" validate:"gte=0"` // 卡牌间距（像素）
}

// CardConfig 卡牌尺寸
// 实际尺寸 = 原始尺寸 * Scale（截断为整数像素）
type CardConfig struct {
	Width  int     `yaml:"width" validate:"gt=0"`
	Height int     `yaml:"height" validate:"gt=0"`
	Scale  float64 `yaml:"scale" validate:"gt=0"`
}

// TimingConfig 时间参数（毫秒）
type TimingConfig struct {
	AnimationDurationMs  int `yaml:"animation_duration_ms" validate:"gt=0"`
	ResolutionDelayMs    int `yaml:"resolution_delay_ms" validate:"gte=0"`
	RoundCompletePauseMs int `yaml:"round_complete_pause_ms" validate:"gte=0"`
}

// AssetsConfig 卡牌资源
// 卡面标识符 = rank + suit，如 "7H"、"10S"
type AssetsConfig struct {
	CardDir string   `yaml:"card_dir"`
	Back    string   `yaml:"back" validate:"required"`
	Ranks   []string `yaml:"ranks" validate:"required,min=1,dive,required"`
	Suits   []string `yaml:"suits" validate:"required,min=1,dive,required"`
}

// Default 返回内置默认配置：800x600 窗口，4x4 网格，72x96 卡牌放大 1.5 倍
func Default() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{Width: 800, Height: 600, Title: "Memory", TPS: 30},
		Grid:   GridConfig{Rows: 4, Cols: 4, Gap: 5},
		Card:   CardConfig{Width: 72, Height: 96, Scale: 1.5},
		Timing: TimingConfig{
			AnimationDurationMs:  1000,
			ResolutionDelayMs:    1000,
			RoundCompletePauseMs: 2000,
		},
		Assets: AssetsConfig{
			CardDir: "cards",
			Back:    "back",
			Ranks:   []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"},
			Suits:   []string{"C", "D", "H", "S"},
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(gameConfigStructLevel, GameConfig{})
	return v
}

// gameConfigStructLevel 跨字段校验：
//   - 槽位总数必须为偶数（每个标识符恰好出现两次）
//   - 网格必须能放进窗口
func gameConfigStructLevel(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(GameConfig)

	if cfg.Grid.Rows > 0 && cfg.Grid.Cols > 0 && (cfg.Grid.Rows*cfg.Grid.Cols)%2 != 0 {
		sl.ReportError(cfg.Grid, "Grid", "grid", "even_slots", "")
	}

	if cfg.Card.Width > 0 && cfg.Card.Height > 0 && cfg.Card.Scale > 0 {
		gw, gh := cfg.GridSize()
		if gw > cfg.Window.Width || gh > cfg.Window.Height {
			sl.ReportError(cfg.Grid, "Grid", "grid", "fits_window", "")
		}
	}
}

// Validate 校验配置
func (c *GameConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Parse 解析 YAML 配置
// 文件中缺省的字段保留 Default() 的值
func Parse(data []byte) (*GameConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 从文件加载配置
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return Parse(data)
}

// TotalSlots 槽位总数（rows * cols）
func (c *GameConfig) TotalSlots() int {
	return c.Grid.Rows * c.Grid.Cols
}

// PairCount 每局需要的不同标识符数量
func (c *GameConfig) PairCount() int {
	return c.TotalSlots() / 2
}

// AnimationDuration 缩小动画时长
func (c *GameConfig) AnimationDuration() time.Duration {
	return time.Duration(c.Timing.AnimationDurationMs) * time.Millisecond
}

// ResolutionDelay 第二张牌翻开后到判定生效的延迟
func (c *GameConfig) ResolutionDelay() time.Duration {
	return time.Duration(c.Timing.ResolutionDelayMs) * time.Millisecond
}

// RoundCompletePause 全部配对后显示胜利横幅的时长
func (c *GameConfig) RoundCompletePause() time.Duration {
	return time.Duration(c.Timing.RoundCompletePauseMs) * time.Millisecond
}

// Identifiers 返回全部候选标识符，按花色优先排列（"2C", "3C", ..., "AS"）
func (c *GameConfig) Identifiers() []string {
	ids := make([]string, 0, len(c.Assets.Ranks)*len(c.Assets.Suits))
	for _, suit := range c.Assets.Suits {
		for _, rank := range c.Assets.Ranks {
			ids = append(ids, rank+suit)
		}
	}
	return ids
}
