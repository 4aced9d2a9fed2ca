package components

import "time"

// CardComponent 单个卡牌槽位的状态
//
// 状态约束：
//   - Matched 与 Shrinking 互斥
//   - Matched 为终态：槽位不再绘制、不可选择，Revealed 无意义
//   - AnimationStartTime 仅在 Shrinking 时有效
type CardComponent struct {
	// Identifier 本局分配的卡面标识符（如 "7H"），只在重新发牌时改变
	Identifier string

	// Revealed 玩家选择后正面朝上
	Revealed bool

	// Matched 已配对并完成缩小动画，本局内永久移出
	Matched bool

	// Shrinking 正在播放缩小动画
	Shrinking bool

	// AnimationStartTime 缩小动画开始时间（单调时钟）
	AnimationStartTime time.Duration
}

// IsSelectable 槽位能否被点击选中
func (c *CardComponent) IsSelectable() bool {
	return !c.Revealed && !c.Matched && !c.Shrinking
}

// ShowsFace 绘制时是否显示正面
// 缩小动画期间 Revealed 保持为 true，所以缩小的是正面
func (c *CardComponent) ShowsFace() bool {
	return c.Revealed && !c.Matched
}

// ResetForDeal 重新发牌时清空所有瞬时状态
func (c *CardComponent) ResetForDeal(identifier string) {
	c.Identifier = identifier
	c.Revealed = false
	c.Matched = false
	c.Shrinking = false
	c.AnimationStartTime = 0
}
