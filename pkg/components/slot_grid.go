package components

import (
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/types"
)

// SlotGridComponent 标识一个格子网格实体（商店、棋盘或后备席）
//
// Occupancy 是一个二维切片，存储每个格子的占用状态
// [row][col] = EntityID，其中 0 (ecs.InvalidEntity) 表示空格子。
// 网格只记录实体句柄，从不拥有实体。
//
// 同一个实体在所有网格中最多出现在一个格子里，
// 这一点由调用方"先移除、再添加"的顺序保证，结构上不做限制。
type SlotGridComponent struct {
	// ID 网格标签，随碰撞结果一起返回
	ID types.GridID
	// OriginX, OriginY 格子 (0,0) 中心的世界坐标
	OriginX float64
	OriginY float64
	// CellSize 正方形格子边长
	CellSize float64
	// Columns, Rows 网格尺寸，创建后不变
	Columns int
	Rows    int
	// Occupancy 占用表 [row][col]
	Occupancy [][]ecs.EntityID
}

// NewSlotGridComponent 创建一个所有格子都为空的网格
func NewSlotGridComponent(id types.GridID, originX, originY, cellSize float64, columns, rows int) *SlotGridComponent {
	occupancy := make([][]ecs.EntityID, rows)
	for r := range occupancy {
		occupancy[r] = make([]ecs.EntityID, columns)
	}
	return &SlotGridComponent{
		ID:        id,
		OriginX:   originX,
		OriginY:   originY,
		CellSize:  cellSize,
		Columns:   columns,
		Rows:      rows,
		Occupancy: occupancy,
	}
}

// InBounds 检查索引是否在网格范围内
func (g *SlotGridComponent) InBounds(idx types.GridIndex) bool {
	return idx.Col >= 0 && idx.Col < g.Columns && idx.Row >= 0 && idx.Row < g.Rows
}
