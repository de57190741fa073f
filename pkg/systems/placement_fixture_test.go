package systems

import (
	"testing"

	"github.com/decker502/autobattler/pkg/components"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/event"
	"github.com/decker502/autobattler/pkg/game"
	"github.com/decker502/autobattler/pkg/types"
)

// 测试布局与原型一致：800x600 屏幕，格子 48，
// 商店 8x1 在顶部，棋盘 8x8 居中，后备席 8x1 在底部
const (
	testCellSize = 48.0
	testOriginX  = 232.0 // 400 - 3.5*48
	testShopY    = 552.0 // 600 - 48
	testBoardY   = 132.0 // 300 - 3.5*48
	testReserveY = 48.0
)

// placementFixture 组装一个完整的放置场景
type placementFixture struct {
	t          *testing.T
	em         *ecs.EntityManager
	grids      *SlotGridSystem
	purse      *game.Purse
	goldText   *components.TextComponent
	dispatcher *event.Dispatcher
	system     *PlacementSystem
	events     []event.Event
}

func newPlacementFixture(t *testing.T, balance uint8) *placementFixture {
	t.Helper()

	em := ecs.NewEntityManager()

	shop := em.CreateEntity()
	em.AddComponent(shop, components.NewSlotGridComponent(types.GridShop, testOriginX, testShopY, testCellSize, 8, 1))
	board := em.CreateEntity()
	em.AddComponent(board, components.NewSlotGridComponent(types.GridBoard, testOriginX, testBoardY, testCellSize, 8, 8))
	reserve := em.CreateEntity()
	em.AddComponent(reserve, components.NewSlotGridComponent(types.GridReserve, testOriginX, testReserveY, testCellSize, 8, 1))

	display := em.CreateEntity()
	goldText := &components.TextComponent{Label: "Gold: "}
	em.AddComponent(display, goldText)

	f := &placementFixture{
		t:          t,
		em:         em,
		grids:      NewSlotGridSystem(em, shop, board, reserve),
		purse:      game.NewPurse(em, balance, display),
		goldText:   goldText,
		dispatcher: event.NewDispatcher(),
	}
	f.system = NewPlacementSystem(em, f.grids, f.purse, f.dispatcher)

	record := event.ListenerFunc(func(e event.Event) { f.events = append(f.events, e) })
	for _, et := range []event.EventType{EventDragStarted, EventPickupRejected, EventPlacementCommitted, EventPlacementCancelled} {
		f.dispatcher.Subscribe(et, record)
	}
	return f
}

// addUnit 创建一个单位并放入指定格子
func (f *placementFixture) addUnit(grid types.GridID, col, row int, cost uint8) ecs.EntityID {
	f.t.Helper()
	idx := types.GridIndex{Col: col, Row: row}
	x, y, ok := f.grids.IndexToCenter(grid, idx)
	if !ok {
		f.t.Fatalf("invalid slot %v%v", grid, idx)
	}
	id := f.em.CreateEntity()
	f.em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	f.em.AddComponent(id, &components.UnitComponent{Cost: cost})
	f.grids.Add(grid, idx, id)
	return id
}

func (f *placementFixture) center(grid types.GridID, col, row int) (float64, float64) {
	f.t.Helper()
	x, y, ok := f.grids.IndexToCenter(grid, types.GridIndex{Col: col, Row: row})
	if !ok {
		f.t.Fatalf("invalid slot %v(%d,%d)", grid, col, row)
	}
	return x, y
}

func (f *placementFixture) press(x, y float64) {
	f.system.Update(InputFrame{X: x, Y: y, HasPointer: true, PrimaryDown: true})
}

func (f *placementFixture) release(x, y float64) {
	f.system.Update(InputFrame{X: x, Y: y, HasPointer: true, PrimaryDown: false})
}

// drag 模拟一次完整手势：按下、移动到目标、在目标处松开
func (f *placementFixture) drag(fromX, fromY, toX, toY float64) {
	f.press(fromX, fromY)
	f.press(toX, toY)
	f.release(toX, toY)
}

func (f *placementFixture) position(id ecs.EntityID) (float64, float64) {
	f.t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](f.em, id)
	if !ok {
		f.t.Fatalf("entity %d has no PositionComponent", id)
	}
	return pos.X, pos.Y
}

// snapshot 深拷贝所有网格的占用表
func (f *placementFixture) snapshot() map[types.GridID][][]ecs.EntityID {
	out := make(map[types.GridID][][]ecs.EntityID)
	for _, grid := range f.grids.Grids() {
		rows := make([][]ecs.EntityID, len(grid.Occupancy))
		for r := range grid.Occupancy {
			rows[r] = append([]ecs.EntityID(nil), grid.Occupancy[r]...)
		}
		out[grid.ID] = rows
	}
	return out
}

func (f *placementFixture) assertSnapshot(want map[types.GridID][][]ecs.EntityID) {
	f.t.Helper()
	got := f.snapshot()
	for id, rows := range want {
		for r := range rows {
			for c := range rows[r] {
				if got[id][r][c] != rows[r][c] {
					f.t.Errorf("%v(%d,%d): got %d, want %d", id, c, r, got[id][r][c], rows[r][c])
				}
			}
		}
	}
}

func (f *placementFixture) lastEvent() event.Event {
	f.t.Helper()
	if len(f.events) == 0 {
		f.t.Fatal("expected at least one event")
	}
	return f.events[len(f.events)-1]
}

func (f *placementFixture) countEvents(et event.EventType) int {
	n := 0
	for _, e := range f.events {
		if e.Type == et {
			n++
		}
	}
	return n
}
