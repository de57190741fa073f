package utils

import "math"

// WorldToGridIndex 将世界坐标转换为网格格子索引
//
// 网格原点 (originX, originY) 是格子 (0,0) 的中心。
// 计算时先加上半个格子，使格子中心（而不是角点）成为"点是否在格子内"的锚点：
//
//	col = floor((x + cellSize/2 - originX) / cellSize)
//	row = floor((y + cellSize/2 - originY) / cellSize)
//
// 网格边界是半开区间：索引为负数或 >= 列数/行数时返回 ok=false。
//
// 参数:
//   - x, y: 世界坐标
//   - originX, originY: 格子 (0,0) 中心的世界坐标
//   - cellSize: 正方形格子边长
//   - cols, rows: 网格列数、行数
//
// 返回:
//   - col, row: 格子索引
//   - ok: 是否落在网格范围内
func WorldToGridIndex(x, y, originX, originY, cellSize float64, cols, rows int) (col, row int, ok bool) {
	if cellSize <= 0 {
		return 0, 0, false
	}

	fx := math.Floor((x + cellSize/2 - originX) / cellSize)
	fy := math.Floor((y + cellSize/2 - originY) / cellSize)

	// 先在浮点域判断，避免超大坐标转换为 int 时溢出
	if fx < 0 || fx >= float64(cols) || fy < 0 || fy >= float64(rows) {
		return 0, 0, false
	}

	return int(fx), int(fy), true
}

// GridIndexToWorld 返回格子中心的世界坐标
// 放置操作总是吸附到这个位置，保证单位落在网格上
func GridIndexToWorld(col, row int, originX, originY, cellSize float64) (centerX, centerY float64) {
	centerX = originX + float64(col)*cellSize
	centerY = originY + float64(row)*cellSize
	return centerX, centerY
}

// GridBounds 返回网格覆盖区域的世界坐标边界（左、下、右、上）
// 与 WorldToGridIndex 的判定区域一致
func GridBounds(originX, originY, cellSize float64, cols, rows int) (left, bottom, right, top float64) {
	left = originX - cellSize/2
	bottom = originY - cellSize/2
	right = left + float64(cols)*cellSize
	top = bottom + float64(rows)*cellSize
	return left, bottom, right, top
}
