// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// JustPressedPoints 返回本帧刚按下的所有指针位置
// 每个新触摸一个点，鼠标左键刚按下时再追加一个点（按此顺序）
func JustPressedPoints() []image.Point {
	var points []image.Point

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		points = append(points, image.Pt(x, y))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		points = append(points, image.Pt(x, y))
	}
	return points
}

// IsAcknowledgeJustPressed 空格、回车或任意指针按下
// 用于提前关闭胜利横幅
func IsAcknowledgeJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	return len(JustPressedPoints()) > 0
}

// IsFullscreenToggleJustPressed F11 刚按下
func IsFullscreenToggleJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF11)
}
