package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/autobattler/pkg/config"
	"github.com/decker502/autobattler/pkg/types"
)

func main() {
	path := flag.String("config", "data/layout.yaml", "要检查的布局配置文件")
	flag.Parse()

	cfg, err := config.LoadLayoutConfig(*path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ 布局配置有效: %s\n", *path)
	fmt.Printf("   屏幕: %dx%d, 格子: %g, 初始金币: %d\n", cfg.ScreenWidth, cfg.ScreenHeight, cfg.CellSize, cfg.Gold())
	for _, id := range types.AllGridIDs {
		g, _ := cfg.Grid(id)
		x, y := g.Origin()
		fmt.Printf("   %-8s %dx%d 原点 (%.1f, %.1f)\n", id, g.Columns, g.Rows, x, y)
	}
	fmt.Printf("   商店单位: %d\n", len(cfg.Stock))
}
