package entities

import (
	"fmt"

	"github.com/decker502/autobattler/pkg/components"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/types"
)

// NewUnitEntity 创建可放置的单位实体
// 单位只有位置和费用两个组件，外观由场景根据 UnitComponent 绘制
//
// 参数:
//   - em: 实体管理器
//   - x, y: 初始位置（世界坐标，通常是某个格子的中心）
//   - cost: 从商店购买的费用
//
// 返回:
//   - ecs.EntityID: 创建的单位实体ID
func NewUnitEntity(em *ecs.EntityManager, x, y float64, cost uint8) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.UnitComponent{Cost: cost})
	return entityID
}

// NewGoldCounterEntity 创建显示金币余额的文本实体
// 文本内容由 game.Purse 写入，这里只设置固定前缀
func NewGoldCounterEntity(em *ecs.EntityManager, x, y float64) ecs.EntityID {
	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.TextComponent{Label: "Gold: "})
	return entityID
}

// NewSlotGridEntity 创建网格实体
//
// 返回:
//   - ecs.EntityID: 网格实体ID，失败返回 0
//   - error: 尺寸非法时返回错误
func NewSlotGridEntity(em *ecs.EntityManager, id types.GridID, originX, originY, cellSize float64, columns, rows int) (ecs.EntityID, error) {
	if columns <= 0 || rows <= 0 {
		return 0, fmt.Errorf("grid %s: invalid size %dx%d", id, columns, rows)
	}
	if cellSize <= 0 {
		return 0, fmt.Errorf("grid %s: invalid cell size %g", id, cellSize)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, components.NewSlotGridComponent(id, originX, originY, cellSize, columns, rows))
	return entityID, nil
}
