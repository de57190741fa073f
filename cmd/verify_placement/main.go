package main

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/autobattler/pkg/config"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/scenes"
	"github.com/decker502/autobattler/pkg/systems"
	"github.com/decker502/autobattler/pkg/types"
)

// slot 网格中的一个格子
type slot struct {
	grid     types.GridID
	col, row int
}

// gesture 一次完整的拖拽：从 from 按下，在 to 松开（to 为 nil 表示在屏幕外松开）
type gesture struct {
	name     string
	from     slot
	to       *slot
	wantGold uint8
}

// 不依赖窗口，直接驱动放置系统，按顺序回放默认布局下的一组手势并检查结果
func main() {
	em := ecs.NewEntityManager()
	world, err := scenes.BuildBoardWorld(em, config.DefaultLayoutConfig())
	if err != nil {
		log.Fatalf("创建场景失败: %v", err)
	}
	placement := systems.NewPlacementSystem(em, world.Grids, world.Purse, nil)

	gestures := []gesture{
		{"购买 商店(0) -> 棋盘(3,3)", slot{types.GridShop, 0, 0}, &slot{types.GridBoard, 3, 3}, 9},
		{"放回原格子 棋盘(3,3)", slot{types.GridBoard, 3, 3}, &slot{types.GridBoard, 3, 3}, 9},
		{"移动 棋盘(3,3) -> 后备席(4,0)", slot{types.GridBoard, 3, 3}, &slot{types.GridReserve, 4, 0}, 9},
		{"拖到屏幕外 后备席(4,0)", slot{types.GridReserve, 4, 0}, nil, 9},
		{"放回商店 后备席(4,0) -> 商店(0)", slot{types.GridReserve, 4, 0}, &slot{types.GridShop, 0, 0}, 9},
		{"购买 商店(1) -> 后备席(4,0) (已占用)", slot{types.GridShop, 1, 0}, &slot{types.GridReserve, 4, 0}, 9},
		{"购买 商店(1) -> 棋盘(0,0)", slot{types.GridShop, 1, 0}, &slot{types.GridBoard, 0, 0}, 8},
	}

	failed := 0
	for _, g := range gestures {
		fromX, fromY, _ := world.Grids.IndexToCenter(g.from.grid, types.GridIndex{Col: g.from.col, Row: g.from.row})
		toX, toY := -100.0, -100.0
		if g.to != nil {
			toX, toY, _ = world.Grids.IndexToCenter(g.to.grid, types.GridIndex{Col: g.to.col, Row: g.to.row})
		}

		placement.Update(systems.InputFrame{X: fromX, Y: fromY, HasPointer: true, PrimaryDown: true})
		placement.Update(systems.InputFrame{X: toX, Y: toY, HasPointer: true, PrimaryDown: true})
		placement.Update(systems.InputFrame{X: toX, Y: toY, HasPointer: true, PrimaryDown: false})

		status := "✅"
		if world.Purse.Balance() != g.wantGold {
			status = "❌"
			failed++
		}
		fmt.Printf("%s %-40s 金币 %d (期望 %d)\n", status, g.name, world.Purse.Balance(), g.wantGold)
	}

	for _, unit := range world.Units {
		if n := world.Grids.CountOccurrences(unit); n != 1 {
			fmt.Printf("❌ 单位 %d 占用了 %d 个格子\n", unit, n)
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d 项检查失败\n", failed)
		os.Exit(1)
	}
	fmt.Printf("\n所有检查通过\n")
}
