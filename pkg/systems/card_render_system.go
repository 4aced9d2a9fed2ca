package systems

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/memory/pkg/game"
)

// CardImageSource 提供卡面和卡背图片
type CardImageSource interface {
	CardImage(identifier string) *ebiten.Image
	BackImage() *ebiten.Image
}

// CardRenderSystem 按快照绘制所有槽位
//
// 绘制规则：
//   - 已配对：不绘制
//   - 已翻开（包括缩小中）：正面
//   - 其他：背面
//
// 缩放以槽位中心为基准。
type CardRenderSystem struct {
	images CardImageSource
}

// NewCardRenderSystem 创建卡牌渲染系统
func NewCardRenderSystem(images CardImageSource) *CardRenderSystem {
	return &CardRenderSystem{images: images}
}

// Draw 绘制快照中的全部卡牌
func (s *CardRenderSystem) Draw(screen *ebiten.Image, snap game.BoardSnapshot) {
	for _, card := range snap.Cards {
		if !card.Visible || card.Scale <= 0 {
			continue
		}

		img := s.imageFor(card)
		if img == nil {
			continue
		}

		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM = CardGeoM(card, float64(b.Dx()), float64(b.Dy()))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

func (s *CardRenderSystem) imageFor(card game.CardView) *ebiten.Image {
	if card.FaceUp {
		return s.images.CardImage(card.Identifier)
	}
	return s.images.BackImage()
}

// CardGeoM 把 imgW x imgH 的图片映射到槽位矩形，并以槽位中心缩放 card.Scale
func CardGeoM(card game.CardView, imgW, imgH float64) ebiten.GeoM {
	var geo ebiten.GeoM
	if imgW <= 0 || imgH <= 0 {
		return geo
	}

	geo.Translate(-imgW/2, -imgH/2)
	geo.Scale(card.Width/imgW*card.Scale, card.Height/imgH*card.Scale)
	geo.Translate(card.X+card.Width/2, card.Y+card.Height/2)
	return geo
}
