package components

// BoundsComponent 槽位的矩形区域（逻辑屏幕坐标，左上角锚点）
// 放置后不再改变，跨局保留
type BoundsComponent struct {
	X, Y          float64
	Width, Height float64
}

// Contains 判断点是否在矩形内
// 左/上边界包含，右/下边界不包含（与像素网格一致）
func (b *BoundsComponent) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Center 返回矩形中心
func (b *BoundsComponent) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}
