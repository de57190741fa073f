// Package utils 提供游戏开发中常用的工具函数
//
// # 坐标系统概述
//
// 本项目使用以下坐标系统：
//   - **世界坐标**：原点在窗口左下角，Y 轴向上（与 2D 正交摄像机一致）
//   - **屏幕坐标**：原点在窗口左上角，Y 轴向下（Ebiten 默认行为）
//
// 网格、碰撞检测和放置逻辑只使用世界坐标；
// 屏幕坐标只出现在输入采集和渲染两端。
package utils

// ScreenToWorld 将屏幕坐标投影为世界坐标
// 摄像机覆盖整个屏幕且不移动，因此只需翻转 Y 轴
func ScreenToWorld(screenX, screenY, screenHeight float64) (worldX, worldY float64) {
	return screenX, screenHeight - screenY
}

// WorldToScreen 是 ScreenToWorld 的逆变换，供渲染使用
func WorldToScreen(worldX, worldY, screenHeight float64) (screenX, screenY float64) {
	return worldX, screenHeight - worldY
}
