package systems

import (
	"log"

	"github.com/decker502/autobattler/pkg/components"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/types"
	"github.com/decker502/autobattler/pkg/utils"
)

// SlotGridSystem 管理商店、棋盘、后备席三个网格的占用状态
// 负责坐标与格子索引的换算、碰撞探测，以及格子的移除和添加
type SlotGridSystem struct {
	entityManager *ecs.EntityManager
	// gridEntities 按碰撞检测优先级排列的网格实体
	gridEntities []ecs.EntityID
}

// NewSlotGridSystem 创建网格系统
// 参数:
//   - em: EntityManager 实例
//   - gridEntities: 带有 SlotGridComponent 的网格实体，按碰撞优先级排列（通常是 商店、棋盘、后备席）
//
// 返回:
//   - *SlotGridSystem: 网格系统实例
func NewSlotGridSystem(em *ecs.EntityManager, gridEntities ...ecs.EntityID) *SlotGridSystem {
	return &SlotGridSystem{
		entityManager: em,
		gridEntities:  gridEntities,
	}
}

// Grid 按网格ID查找网格组件
func (s *SlotGridSystem) Grid(id types.GridID) (*components.SlotGridComponent, bool) {
	for _, entity := range s.gridEntities {
		grid, ok := ecs.GetComponent[*components.SlotGridComponent](s.entityManager, entity)
		if ok && grid.ID == id {
			return grid, true
		}
	}
	return nil, false
}

// Grids 按优先级顺序返回所有网格组件
func (s *SlotGridSystem) Grids() []*components.SlotGridComponent {
	grids := make([]*components.SlotGridComponent, 0, len(s.gridEntities))
	for _, entity := range s.gridEntities {
		if grid, ok := ecs.GetComponent[*components.SlotGridComponent](s.entityManager, entity); ok {
			grids = append(grids, grid)
		}
	}
	return grids
}

// WorldToIndex 将世界坐标转换为指定网格的格子索引
// 返回 ok=false 表示不在该网格范围内（或网格不存在）
func (s *SlotGridSystem) WorldToIndex(id types.GridID, x, y float64) (types.GridIndex, bool) {
	grid, ok := s.Grid(id)
	if !ok {
		return types.GridIndex{}, false
	}
	return worldToIndex(grid, x, y)
}

// IndexToCenter 返回指定网格中格子中心的世界坐标
func (s *SlotGridSystem) IndexToCenter(id types.GridID, idx types.GridIndex) (x, y float64, ok bool) {
	grid, ok := s.Grid(id)
	if !ok || !grid.InBounds(idx) {
		return 0, 0, false
	}
	x, y = utils.GridIndexToWorld(idx.Col, idx.Row, grid.OriginX, grid.OriginY, grid.CellSize)
	return x, y, true
}

// Probe 在单个网格上探测世界坐标
// 越界返回 CollisionNone；否则返回 EmptySlot 或 OccupiedSlot，并带上吸附后的格子中心
func (s *SlotGridSystem) Probe(id types.GridID, x, y float64) CollisionOutcome {
	grid, ok := s.Grid(id)
	if !ok {
		return CollisionOutcome{}
	}
	return probe(grid, x, y)
}

// Occupant 返回格子中的实体，空格子或越界返回 0
func (s *SlotGridSystem) Occupant(id types.GridID, idx types.GridIndex) ecs.EntityID {
	grid, ok := s.Grid(id)
	if !ok || !grid.InBounds(idx) {
		return ecs.InvalidEntity
	}
	return grid.Occupancy[idx.Row][idx.Col]
}

// Remove 清空指定格子
// 格子已为空或越界时静默忽略，调用方应当已知格子之前的状态
func (s *SlotGridSystem) Remove(id types.GridID, idx types.GridIndex) {
	grid, ok := s.Grid(id)
	if !ok || !grid.InBounds(idx) {
		return
	}
	grid.Occupancy[idx.Row][idx.Col] = ecs.InvalidEntity
}

// Add 将实体放入指定格子，无条件覆盖原有占用者
//
// 前置条件：目标格子为空（调用方应先通过 Probe 得到 EmptySlot）。
// 这里不做运行时检查。越界时静默忽略。
func (s *SlotGridSystem) Add(id types.GridID, idx types.GridIndex, entity ecs.EntityID) {
	grid, ok := s.Grid(id)
	if !ok || !grid.InBounds(idx) {
		log.Printf("[SlotGridSystem] Warning: add to invalid slot %v%v ignored", id, idx)
		return
	}
	grid.Occupancy[idx.Row][idx.Col] = entity
}

// Locate 查找实体所在的第一个格子
func (s *SlotGridSystem) Locate(entity ecs.EntityID) (types.GridID, types.GridIndex, bool) {
	if entity == ecs.InvalidEntity {
		return 0, types.GridIndex{}, false
	}
	for _, grid := range s.Grids() {
		for row := range grid.Occupancy {
			for col, occupant := range grid.Occupancy[row] {
				if occupant == entity {
					return grid.ID, types.GridIndex{Col: col, Row: row}, true
				}
			}
		}
	}
	return 0, types.GridIndex{}, false
}

// CountOccurrences 统计实体在所有网格中出现的次数
// 任何时刻结果都应 <= 1
func (s *SlotGridSystem) CountOccurrences(entity ecs.EntityID) int {
	if entity == ecs.InvalidEntity {
		return 0
	}
	count := 0
	for _, grid := range s.Grids() {
		for row := range grid.Occupancy {
			for _, occupant := range grid.Occupancy[row] {
				if occupant == entity {
					count++
				}
			}
		}
	}
	return count
}

// worldToIndex 在单个网格组件上执行坐标换算
func worldToIndex(grid *components.SlotGridComponent, x, y float64) (types.GridIndex, bool) {
	col, row, ok := utils.WorldToGridIndex(x, y, grid.OriginX, grid.OriginY, grid.CellSize, grid.Columns, grid.Rows)
	if !ok {
		return types.GridIndex{}, false
	}
	return types.GridIndex{Col: col, Row: row}, true
}
