package systems

import (
	"testing"

	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/types"
)

// TestProbe 测试单个网格上的碰撞探测
func TestProbe(t *testing.T) {
	f := newPlacementFixture(t, 10)
	unit := f.addUnit(types.GridBoard, 3, 2, 1)

	// 命中已占用格子（偏离中心的点也吸附到中心）
	x, y := f.center(types.GridBoard, 3, 2)
	outcome := f.grids.Probe(types.GridBoard, x+20, y-20)
	if outcome.Kind != CollisionOccupiedSlot {
		t.Fatalf("Expected OccupiedSlot, got %v", outcome)
	}
	if outcome.Entity != unit {
		t.Errorf("Expected entity %d, got %d", unit, outcome.Entity)
	}
	if outcome.X != x || outcome.Y != y {
		t.Errorf("Expected snapped center (%.1f, %.1f), got (%.1f, %.1f)", x, y, outcome.X, outcome.Y)
	}
	if outcome.Grid != types.GridBoard || outcome.Index != (types.GridIndex{Col: 3, Row: 2}) {
		t.Errorf("Unexpected grid/index: %v %v", outcome.Grid, outcome.Index)
	}

	// 命中空格子
	x, y = f.center(types.GridBoard, 4, 2)
	if outcome := f.grids.Probe(types.GridBoard, x, y); outcome.Kind != CollisionEmptySlot {
		t.Errorf("Expected EmptySlot, got %v", outcome)
	}

	// 在其他网格的区域里探测棋盘 → None
	x, y = f.center(types.GridShop, 0, 0)
	if outcome := f.grids.Probe(types.GridBoard, x, y); outcome.Kind != CollisionNone {
		t.Errorf("Expected None outside board, got %v", outcome)
	}
}

// TestRemoveIsNoOpWhenEmpty 移除空格子不会出错
func TestRemoveIsNoOpWhenEmpty(t *testing.T) {
	f := newPlacementFixture(t, 10)
	idx := types.GridIndex{Col: 1, Row: 1}

	f.grids.Remove(types.GridBoard, idx)
	f.grids.Remove(types.GridBoard, types.GridIndex{Col: 99, Row: 99})

	if f.grids.Occupant(types.GridBoard, idx) != ecs.InvalidEntity {
		t.Error("Slot should stay empty")
	}
}

// TestAddOverwrites Add 无条件覆盖（前置条件由调用方保证）
func TestAddOverwrites(t *testing.T) {
	f := newPlacementFixture(t, 10)
	first := f.addUnit(types.GridReserve, 2, 0, 1)
	second := f.em.CreateEntity()
	idx := types.GridIndex{Col: 2, Row: 0}

	f.grids.Add(types.GridReserve, idx, second)

	if got := f.grids.Occupant(types.GridReserve, idx); got != second {
		t.Errorf("Expected occupant %d after overwrite, got %d", second, got)
	}
	if f.grids.CountOccurrences(first) != 0 {
		t.Error("Overwritten entity should no longer be referenced")
	}
}

// TestAddOutOfBoundsIgnored 越界添加被忽略
func TestAddOutOfBoundsIgnored(t *testing.T) {
	f := newPlacementFixture(t, 10)
	id := f.em.CreateEntity()

	f.grids.Add(types.GridShop, types.GridIndex{Col: 0, Row: 1}, id)

	if f.grids.CountOccurrences(id) != 0 {
		t.Error("Out of bounds add should not place the entity anywhere")
	}
}

// TestLocate 查找实体所在格子
func TestLocate(t *testing.T) {
	f := newPlacementFixture(t, 10)
	unit := f.addUnit(types.GridReserve, 6, 0, 1)

	grid, idx, ok := f.grids.Locate(unit)
	if !ok {
		t.Fatal("Expected unit to be located")
	}
	if grid != types.GridReserve || idx != (types.GridIndex{Col: 6, Row: 0}) {
		t.Errorf("Locate = %v%v, want reserve(6,0)", grid, idx)
	}

	if _, _, ok := f.grids.Locate(ecs.InvalidEntity); ok {
		t.Error("InvalidEntity should never be located")
	}
	if _, _, ok := f.grids.Locate(f.em.CreateEntity()); ok {
		t.Error("Unplaced entity should not be located")
	}
}

// TestWorldToIndexPerGrid 各网格使用自己的原点
func TestWorldToIndexPerGrid(t *testing.T) {
	f := newPlacementFixture(t, 10)

	tests := []struct {
		grid   types.GridID
		x, y   float64
		want   types.GridIndex
		wantOK bool
	}{
		{types.GridShop, testOriginX, testShopY, types.GridIndex{Col: 0, Row: 0}, true},
		{types.GridShop, testOriginX + 7*testCellSize, testShopY, types.GridIndex{Col: 7, Row: 0}, true},
		{types.GridBoard, testOriginX + 3*testCellSize, testBoardY + 3*testCellSize, types.GridIndex{Col: 3, Row: 3}, true},
		{types.GridReserve, testOriginX + 4*testCellSize, testReserveY + 10, types.GridIndex{Col: 4, Row: 0}, true},
		{types.GridReserve, testOriginX, testBoardY, types.GridIndex{}, false},
	}

	for _, tt := range tests {
		got, ok := f.grids.WorldToIndex(tt.grid, tt.x, tt.y)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("WorldToIndex(%v, %.1f, %.1f) = %v,%v want %v,%v", tt.grid, tt.x, tt.y, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestMissingGrid 未注册的网格不会导致崩溃
func TestMissingGrid(t *testing.T) {
	em := ecs.NewEntityManager()
	grids := NewSlotGridSystem(em)

	if outcome := grids.Probe(types.GridBoard, 0, 0); outcome.Kind != CollisionNone {
		t.Errorf("Expected None for missing grid, got %v", outcome)
	}
	if _, _, ok := grids.IndexToCenter(types.GridBoard, types.GridIndex{}); ok {
		t.Error("IndexToCenter should fail for missing grid")
	}
	grids.Add(types.GridBoard, types.GridIndex{}, 1)
	grids.Remove(types.GridBoard, types.GridIndex{})
}
