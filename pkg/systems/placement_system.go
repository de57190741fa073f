package systems

import (
	"log"

	"github.com/decker502/autobattler/pkg/components"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/event"
	"github.com/decker502/autobattler/pkg/game"
	"github.com/decker502/autobattler/pkg/types"
)

// InputFrame 每帧的输入（已由摄像机投影为世界坐标）
type InputFrame struct {
	// X, Y 指针的世界坐标，仅在 HasPointer 为 true 时有效
	X, Y float64
	// HasPointer 本帧指针是否能解析为世界坐标
	HasPointer bool
	// PrimaryDown 主按键是否按下
	PrimaryDown bool
}

// SelectionState 拖拽状态机的状态
type SelectionState int

const (
	// SelectionIdle 没有进行中的拖拽
	SelectionIdle SelectionState = iota
	// SelectionDragging 正在拖拽一个单位
	SelectionDragging
)

func (s SelectionState) String() string {
	if s == SelectionDragging {
		return "Dragging"
	}
	return "Idle"
}

// DragState 进行中的拖拽
// 只在拖拽期间存在，松开指针时无论结果如何都会丢弃
type DragState struct {
	Source      types.GridID
	Entity      ecs.EntityID
	OriginX     float64 // 拾取时格子中心的世界坐标，取消时吸附回这里
	OriginY     float64
	OriginIndex types.GridIndex
}

// 放置系统发出的事件类型
const (
	EventDragStarted        event.EventType = "placement.drag_started"
	EventPickupRejected     event.EventType = "placement.pickup_rejected"
	EventPlacementCommitted event.EventType = "placement.committed"
	EventPlacementCancelled event.EventType = "placement.cancelled"
)

// CancelReason 说明拖拽为何没有提交（或拾取为何被拒绝）
type CancelReason string

const (
	ReasonNone              CancelReason = ""
	ReasonOffGrid           CancelReason = "off grid"
	ReasonOccupied          CancelReason = "destination occupied"
	ReasonShopDestination   CancelReason = "shop destination"
	ReasonSelfDrop          CancelReason = "self-drop"
	ReasonEntityGone        CancelReason = "entity gone"
	ReasonInsufficientFunds CancelReason = "insufficient funds"
	ReasonStaleOrigin       CancelReason = "origin slot changed"
)

// PlacementEvent 是放置系统事件的数据
type PlacementEvent struct {
	Entity      ecs.EntityID
	Source      types.GridID
	OriginIndex types.GridIndex
	Dest        types.GridID    // 仅提交事件有效
	DestIndex   types.GridIndex // 仅提交事件有效
	Cost        uint8           // 提交事件中为实际扣除的金币，拒绝事件中为所需金币
	Reason      CancelReason
}

// PlacementSystem 负责从商店购买单位、在网格之间拖拽和放置单位
//
// 每帧调用一次 Update，在这一帧内独占网格、拖拽状态和钱包的读写。
// 拖拽跨越多帧只通过 drag 字段保存，不存在后台任务。
type PlacementSystem struct {
	entityManager *ecs.EntityManager
	grids         *SlotGridSystem
	purse         *game.Purse
	dispatcher    *event.Dispatcher // 可为 nil

	drag *DragState
	// rejectLatched 本次按下已经发出过拒绝事件，松开后重置，避免按住时每帧重复发送
	rejectLatched bool
}

// NewPlacementSystem 创建放置系统
//
// 参数：
//   - em: 实体管理器
//   - grids: 网格系统（决定碰撞优先级）
//   - purse: 钱包
//   - dispatcher: 事件分发器，可为 nil
func NewPlacementSystem(em *ecs.EntityManager, grids *SlotGridSystem, purse *game.Purse, dispatcher *event.Dispatcher) *PlacementSystem {
	return &PlacementSystem{
		entityManager: em,
		grids:         grids,
		purse:         purse,
		dispatcher:    dispatcher,
	}
}

// State 返回当前状态
func (s *PlacementSystem) State() SelectionState {
	if s.drag != nil {
		return SelectionDragging
	}
	return SelectionIdle
}

// Drag 返回进行中的拖拽（副本）
func (s *PlacementSystem) Drag() (DragState, bool) {
	if s.drag == nil {
		return DragState{}, false
	}
	return *s.drag, true
}

// Update 推进一帧状态机
func (s *PlacementSystem) Update(input InputFrame) {
	if !input.PrimaryDown {
		s.rejectLatched = false
	}

	if s.drag == nil {
		if input.PrimaryDown && input.HasPointer {
			s.startSelection(input.X, input.Y)
		}
		return
	}

	// 被拖拽的实体已经从世界中移除：直接回到 Idle，不修改任何状态
	if !s.entityManager.Exists(s.drag.Entity) {
		drag := *s.drag
		s.drag = nil
		log.Printf("[PlacementSystem] 拖拽中的实体 %d 已不存在，放弃拖拽", drag.Entity)
		s.dispatch(EventPlacementCancelled, drag, ReasonEntityGone)
		return
	}

	if input.PrimaryDown {
		if input.HasPointer {
			s.continueSelection(input.X, input.Y)
		}
		return
	}

	s.finishSelection(input)
}

// startSelection 在 Idle 状态按下指针时尝试拾取单位
func (s *PlacementSystem) startSelection(x, y float64) {
	outcome := s.grids.Resolve(x, y)
	if outcome.Kind != CollisionOccupiedSlot {
		return
	}

	if !s.entityManager.Exists(outcome.Entity) {
		log.Printf("[PlacementSystem] 格子 %v%v 引用的实体 %d 已不存在", outcome.Grid, outcome.Index, outcome.Entity)
		return
	}

	// 从商店拾取时检查是否买得起；棋盘和后备席上的单位可以免费移动
	if outcome.Grid == types.GridShop {
		unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, outcome.Entity)
		if !ok {
			log.Printf("[PlacementSystem] 商店实体 %d 没有 UnitComponent，无法购买", outcome.Entity)
			return
		}
		if !s.purse.CanAfford(unit.Cost) {
			if !s.rejectLatched {
				s.rejectLatched = true
				log.Printf("[PlacementSystem] 金币不足，需要 %d，当前 %d", unit.Cost, s.purse.Balance())
				s.dispatcher.Dispatch(event.Event{
					Type: EventPickupRejected,
					Data: PlacementEvent{
						Entity:      outcome.Entity,
						Source:      outcome.Grid,
						OriginIndex: outcome.Index,
						Cost:        unit.Cost,
						Reason:      ReasonInsufficientFunds,
					},
				})
			}
			return
		}
	}

	s.drag = &DragState{
		Source:      outcome.Grid,
		Entity:      outcome.Entity,
		OriginX:     outcome.X,
		OriginY:     outcome.Y,
		OriginIndex: outcome.Index,
	}
	log.Printf("[PlacementSystem] 开始拖拽实体 %d，来自 %v%v", outcome.Entity, outcome.Grid, outcome.Index)
	s.dispatch(EventDragStarted, *s.drag, ReasonNone)
}

// continueSelection 拖拽中：单位跟随原始光标位置（不吸附，不修改网格）
func (s *PlacementSystem) continueSelection(x, y float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.drag.Entity)
	if !ok {
		return
	}
	pos.X = x
	pos.Y = y
}

// finishSelection 松开指针：提交或取消，然后回到 Idle
func (s *PlacementSystem) finishSelection(input InputFrame) {
	drag := *s.drag
	s.drag = nil

	outcome := CollisionOutcome{}
	if input.HasPointer {
		outcome = s.grids.Resolve(input.X, input.Y)
	}

	if reason := s.commit(drag, outcome); reason != ReasonNone {
		s.snapTo(drag.Entity, drag.OriginX, drag.OriginY)
		log.Printf("[PlacementSystem] 取消放置实体 %d (%s)，回到 %v%v", drag.Entity, reason, drag.Source, drag.OriginIndex)
		s.dispatch(EventPlacementCancelled, drag, reason)
	}
}

// commit 尝试提交放置
// 返回 ReasonNone 表示已提交；否则不做任何修改并返回取消原因
//
// 提交要么完整生效（移出来源格子、放入目标格子、可选扣款、吸附位置），要么完全不生效。
func (s *PlacementSystem) commit(drag DragState, outcome CollisionOutcome) CancelReason {
	switch outcome.Kind {
	case CollisionNone:
		return ReasonOffGrid
	case CollisionOccupiedSlot:
		// 放回自己的原格子：视为无操作
		if outcome.Entity == drag.Entity && outcome.Grid == drag.Source && outcome.Index == drag.OriginIndex {
			return ReasonSelfDrop
		}
		return ReasonOccupied
	}

	// 单位永远不能放回商店
	if outcome.Grid == types.GridShop {
		return ReasonShopDestination
	}

	// 所有检查都在修改之前完成
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, drag.Entity)
	if !ok {
		return ReasonEntityGone
	}
	if s.grids.Occupant(drag.Source, drag.OriginIndex) != drag.Entity {
		return ReasonStaleOrigin
	}

	// 费用在提交时重新读取，而不是使用拾取时的缓存值
	var cost uint8
	if drag.Source == types.GridShop {
		unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, drag.Entity)
		if !ok {
			return ReasonEntityGone
		}
		cost = unit.Cost
		if !s.purse.CanAfford(cost) {
			return ReasonInsufficientFunds
		}
	}

	s.grids.Remove(drag.Source, drag.OriginIndex)
	s.grids.Add(outcome.Grid, outcome.Index, drag.Entity)
	pos.X = outcome.X
	pos.Y = outcome.Y
	if drag.Source == types.GridShop {
		s.purse.Debit(cost)
		log.Printf("[PlacementSystem] 扣除金币 %d，剩余 %d", cost, s.purse.Balance())
	}

	log.Printf("[PlacementSystem] 实体 %d 放置完成: %v%v -> %v%v",
		drag.Entity, drag.Source, drag.OriginIndex, outcome.Grid, outcome.Index)
	s.dispatcher.Dispatch(event.Event{
		Type: EventPlacementCommitted,
		Data: PlacementEvent{
			Entity:      drag.Entity,
			Source:      drag.Source,
			OriginIndex: drag.OriginIndex,
			Dest:        outcome.Grid,
			DestIndex:   outcome.Index,
			Cost:        cost,
		},
	})
	return ReasonNone
}

// snapTo 直接设置实体位置（不做插值）
func (s *PlacementSystem) snapTo(entity ecs.EntityID, x, y float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entity)
	if !ok {
		return
	}
	pos.X = x
	pos.Y = y
}

func (s *PlacementSystem) dispatch(eventType event.EventType, drag DragState, reason CancelReason) {
	s.dispatcher.Dispatch(event.Event{
		Type: eventType,
		Data: PlacementEvent{
			Entity:      drag.Entity,
			Source:      drag.Source,
			OriginIndex: drag.OriginIndex,
			Reason:      reason,
		},
	})
}
