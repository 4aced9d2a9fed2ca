package config

// 布局计算
// 所有坐标均为逻辑屏幕坐标（左上角为原点），网格在窗口中居中

// CardSize 返回缩放后的卡牌尺寸（像素，截断为整数）
func (c *GameConfig) CardSize() (width, height int) {
	return int(float64(c.Card.Width) * c.Card.Scale), int(float64(c.Card.Height) * c.Card.Scale)
}

// GridSize 返回整个网格的像素尺寸（含间距）
func (c *GameConfig) GridSize() (width, height int) {
	cw, ch := c.CardSize()
	width = c.Grid.Cols*cw + (c.Grid.Cols-1)*c.Grid.Gap
	height = c.Grid.Rows*ch + (c.Grid.Rows-1)*c.Grid.Gap
	return width, height
}

// GridOrigin 返回网格左上角坐标
func (c *GameConfig) GridOrigin() (x, y int) {
	gw, gh := c.GridSize()
	return (c.Window.Width - gw) / 2, (c.Window.Height - gh) / 2
}

// SlotPosition 返回第 index 个槽位（行优先）的左上角坐标
func (c *GameConfig) SlotPosition(index int) (x, y int) {
	cw, ch := c.CardSize()
	ox, oy := c.GridOrigin()
	row := index / c.Grid.Cols
	col := index % c.Grid.Cols
	return ox + col*(cw+c.Grid.Gap), oy + row*(ch+c.Grid.Gap)
}
