package components

// TextComponent 是一个 UI 文本元素
// 外部 UI 层每帧读取 Text 并绘制
type TextComponent struct {
	Text string
	// Label 绘制在 Text 前面的固定前缀（如 "Gold: "）
	Label string
}
