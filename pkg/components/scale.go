package components

// ScaleComponent 存储实体级别的缩放因子
// 卡牌缩小动画写入此组件，渲染时以槽位中心为基准统一缩放
//
// 非缩小状态下固定为 1.0
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小，0.5 = 50%）
	ScaleX float64

	// ScaleY Y轴缩放因子（1.0 = 原始大小，0.5 = 50%）
	ScaleY float64
}

// NewUniformScale 创建等比缩放组件
func NewUniformScale(s float64) *ScaleComponent {
	return &ScaleComponent{ScaleX: s, ScaleY: s}
}

// SetUniform 设置等比缩放
func (s *ScaleComponent) SetUniform(v float64) {
	s.ScaleX = v
	s.ScaleY = v
}
