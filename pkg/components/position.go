package components

// PositionComponent 存储实体的渲染位置（世界坐标）
// 放置系统写入，渲染系统在下一帧读取
type PositionComponent struct {
	X float64
	Y float64
}
