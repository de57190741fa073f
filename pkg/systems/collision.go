package systems

import (
	"fmt"

	"github.com/decker502/autobattler/pkg/components"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/types"
	"github.com/decker502/autobattler/pkg/utils"
)

// CollisionKind 碰撞结果的类别
type CollisionKind int

const (
	// CollisionNone 不在任何网格内
	CollisionNone CollisionKind = iota
	// CollisionEmptySlot 命中空格子
	CollisionEmptySlot
	// CollisionOccupiedSlot 命中已占用的格子
	CollisionOccupiedSlot
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionEmptySlot:
		return "EmptySlot"
	case CollisionOccupiedSlot:
		return "OccupiedSlot"
	default:
		return "None"
	}
}

// CollisionOutcome 世界坐标的碰撞探测结果
//
// X, Y 是命中格子的中心（吸附位置），不是原始光标位置。
// Kind 为 CollisionNone 时其余字段无意义。
type CollisionOutcome struct {
	Kind   CollisionKind
	Grid   types.GridID
	Entity ecs.EntityID // 仅 CollisionOccupiedSlot 有效
	X, Y   float64
	Index  types.GridIndex
}

func (o CollisionOutcome) String() string {
	switch o.Kind {
	case CollisionEmptySlot:
		return fmt.Sprintf("EmptySlot(%v%v)", o.Grid, o.Index)
	case CollisionOccupiedSlot:
		return fmt.Sprintf("OccupiedSlot(%v%v, entity=%d)", o.Grid, o.Index, o.Entity)
	default:
		return "None"
	}
}

// Resolve 按优先级顺序（商店、棋盘、后备席）探测各网格，返回第一个非 None 的结果
//
// 即使网格区域重叠，先注册的网格也总是优先命中；
// 正常布局下各区域互不重叠，顺序只用于打破平局。
func (s *SlotGridSystem) Resolve(x, y float64) CollisionOutcome {
	for _, grid := range s.Grids() {
		if outcome := probe(grid, x, y); outcome.Kind != CollisionNone {
			return outcome
		}
	}
	return CollisionOutcome{}
}

// probe 在单个网格组件上探测
func probe(grid *components.SlotGridComponent, x, y float64) CollisionOutcome {
	idx, ok := worldToIndex(grid, x, y)
	if !ok {
		return CollisionOutcome{}
	}

	centerX, centerY := utils.GridIndexToWorld(idx.Col, idx.Row, grid.OriginX, grid.OriginY, grid.CellSize)
	outcome := CollisionOutcome{
		Kind:  CollisionEmptySlot,
		Grid:  grid.ID,
		X:     centerX,
		Y:     centerY,
		Index: idx,
	}

	if occupant := grid.Occupancy[idx.Row][idx.Col]; occupant != ecs.InvalidEntity {
		outcome.Kind = CollisionOccupiedSlot
		outcome.Entity = occupant
	}
	return outcome
}
