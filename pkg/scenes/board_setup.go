package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/autobattler/pkg/config"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/entities"
	"github.com/decker502/autobattler/pkg/game"
	"github.com/decker502/autobattler/pkg/systems"
	"github.com/decker502/autobattler/pkg/types"
)

// goldCounterMargin 金币文本距离屏幕左上角的边距
const goldCounterMargin = 16.0

// BoardWorld 是场景初始化后的世界
// 只包含数据和系统，不依赖 ebiten，可以直接在测试中构建
type BoardWorld struct {
	EntityManager *ecs.EntityManager
	Grids         *systems.SlotGridSystem
	Purse         *game.Purse
	// GridEntities 按碰撞优先级排列
	GridEntities []ecs.EntityID
	GoldEntity   ecs.EntityID
	// Units 开局时放在商店里的单位
	Units []ecs.EntityID
}

// BuildBoardWorld 按布局配置创建网格、商店单位和金币显示
//
// 参数：
//   - em: 实体管理器
//   - cfg: 已验证的布局配置
//
// 返回：
//   - *BoardWorld: 初始化完成的世界
//   - error: 配置无法实例化时返回错误
func BuildBoardWorld(em *ecs.EntityManager, cfg *config.LayoutConfig) (*BoardWorld, error) {
	world := &BoardWorld{EntityManager: em}

	for _, g := range cfg.Grids {
		id, err := types.ParseGridID(g.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create grid: %w", err)
		}
		originX, originY := g.Origin()
		entity, err := entities.NewSlotGridEntity(em, id, originX, originY, cfg.CellSize, g.Columns, g.Rows)
		if err != nil {
			return nil, fmt.Errorf("failed to create grid: %w", err)
		}
		world.GridEntities = append(world.GridEntities, entity)
		log.Printf("[BoardSetup] 创建网格 %s: %dx%d, 原点 (%.1f, %.1f)", id, g.Columns, g.Rows, originX, originY)
	}
	world.Grids = systems.NewSlotGridSystem(em, world.GridEntities...)

	world.GoldEntity = entities.NewGoldCounterEntity(em, goldCounterMargin, float64(cfg.ScreenHeight)-goldCounterMargin)
	world.Purse = game.NewPurse(em, cfg.Gold(), world.GoldEntity)

	for _, s := range cfg.Stock {
		idx := types.GridIndex{Col: s.Col, Row: s.Row}
		x, y, ok := world.Grids.IndexToCenter(types.GridShop, idx)
		if !ok {
			return nil, fmt.Errorf("stock slot %v is outside the shop", idx)
		}
		unit := entities.NewUnitEntity(em, x, y, uint8(s.Cost))
		world.Grids.Add(types.GridShop, idx, unit)
		world.Units = append(world.Units, unit)
	}

	log.Printf("[BoardSetup] 商店上架 %d 个单位，初始金币 %d", len(world.Units), world.Purse.Balance())
	return world, nil
}
