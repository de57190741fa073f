// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 存储当前帧的指针状态（屏幕坐标）
// 统一处理鼠标和触摸输入
type PointerState struct {
	// X, Y 指针位置
	X, Y int
	// Available 本帧是否能得到有效的指针位置
	Available bool
	// Pressed 主按键（鼠标左键或触摸）是否按下
	Pressed bool
}

// GetPointerState 获取当前帧的指针状态
// 优先检测触摸，其次检测鼠标
func GetPointerState() PointerState {
	// 首先检查活动的触摸（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{X: x, Y: y, Available: true, Pressed: true}
	}

	// 触摸刚刚抬起：活动ID已消失，使用上一帧的位置作为释放点
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		x, y := inpututil.TouchPositionInPreviousTick(released[0])
		return PointerState{X: x, Y: y, Available: true, Pressed: false}
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	return PointerState{
		X:         x,
		Y:         y,
		Available: true,
		Pressed:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}
