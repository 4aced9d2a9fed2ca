package systems

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/memory/pkg/game"
	"github.com/decker502/memory/pkg/utils"
)

var (
	// FeltColor 牌桌背景
	FeltColor = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	// BannerColor 胜利文字
	BannerColor = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

const (
	hudX, hudY      = 10, 10
	bannerText      = "You win!"
	bannerFadeIn    = 300 * time.Millisecond
	bannerPanelPad  = 20.0
	bannerPanelBase = 160 // 面板最大不透明度
)

// FontSource 按字号提供字体
type FontSource interface {
	Face(size float64) *text.GoTextFace
}

// HUDRenderSystem 绘制背景、回合计数和胜利横幅
type HUDRenderSystem struct {
	hudFace    *text.GoTextFace
	bannerFace *text.GoTextFace
	width      int
	height     int
}

// NewHUDRenderSystem 创建 HUD 渲染系统
// width/height 为逻辑屏幕尺寸（横幅居中）
func NewHUDRenderSystem(fonts FontSource, width, height int) *HUDRenderSystem {
	return &HUDRenderSystem{
		hudFace:    fonts.Face(36),
		bannerFace: fonts.Face(72),
		width:      width,
		height:     height,
	}
}

// DrawBackground 铺满牌桌绿色
func (s *HUDRenderSystem) DrawBackground(screen *ebiten.Image) {
	screen.Fill(FeltColor)
}

// Draw 绘制 "Turns: N"，本局完成时在中间绘制胜利横幅
func (s *HUDRenderSystem) Draw(screen *ebiten.Image, snap game.BoardSnapshot, now time.Duration) {
	if s.hudFace != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudX, hudY)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, TurnsLabel(snap.TurnCount), s.hudFace, op)
	}

	if snap.RoundComplete {
		s.drawBanner(screen, BannerAlpha(now-snap.CompletedAt))
	}
}

func (s *HUDRenderSystem) drawBanner(screen *ebiten.Image, alpha float64) {
	if s.bannerFace == nil || alpha <= 0 {
		return
	}

	w, h := text.Measure(bannerText, s.bannerFace, 0)
	x := (float64(s.width) - w) / 2
	y := (float64(s.height) - h) / 2

	panel := color.RGBA{A: uint8(utils.Lerp(0, bannerPanelBase, alpha))}
	vector.DrawFilledRect(screen,
		float32(x-bannerPanelPad), float32(y-bannerPanelPad),
		float32(w+bannerPanelPad*2), float32(h+bannerPanelPad*2),
		panel, true)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(BannerColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, bannerText, s.bannerFace, op)
}

// TurnsLabel HUD 文本
func TurnsLabel(turns int) string {
	return fmt.Sprintf("Turns: %d", turns)
}

// BannerAlpha 胜利横幅淡入进度（0..1）
func BannerAlpha(sinceComplete time.Duration) float64 {
	t := utils.Clamp01(float64(sinceComplete) / float64(bannerFadeIn))
	return utils.EaseOutQuad(t)
}
