package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/autobattler/pkg/types"
)

// 布局默认值，与最初的原型一致
const (
	DefaultScreenWidth  = 800
	DefaultScreenHeight = 600
	DefaultCellSize     = 48.0
	DefaultInitialGold  = 10
	DefaultShopStock    = 8
	DefaultUnitCost     = 1
)

// LayoutConfig 描述场景布局：屏幕尺寸、三个网格、初始金币和商店货架
//
// 所有坐标都是世界坐标（原点在左下角，Y 轴向上）。
// 省略的字段由 applyDefaults 按原型布局补齐：
// 商店一行在顶部，8x8 棋盘居中，后备席一行在底部。
type LayoutConfig struct {
	ScreenWidth  int     `yaml:"screenWidth"`
	ScreenHeight int     `yaml:"screenHeight"`
	CellSize     float64 `yaml:"cellSize"`
	// InitialGold 为 nil 表示使用默认值；显式写 0 表示开局没有金币
	InitialGold *int          `yaml:"initialGold"`
	Grids       []GridConfig  `yaml:"grids"`
	Stock       []StockConfig `yaml:"stock"`
}

// GridConfig 单个网格的配置
type GridConfig struct {
	ID      string `yaml:"id"` // shop / board / reserve
	Columns int    `yaml:"columns"`
	Rows    int    `yaml:"rows"`
	// OriginX, OriginY 格子 (0,0) 中心的世界坐标，省略时按屏幕尺寸计算
	OriginX *float64 `yaml:"originX"`
	OriginY *float64 `yaml:"originY"`
}

// StockConfig 开局时放在商店格子里的单位
type StockConfig struct {
	Col  int `yaml:"col"`
	Row  int `yaml:"row"`
	Cost int `yaml:"cost"`
}

// LoadLayoutConfig 从文件加载布局配置
//
// 参数：
//   - path: YAML 文件路径
//
// 返回：
//   - *LayoutConfig: 已补齐默认值并通过验证的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadLayoutConfig(path string) (*LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout config file %s: %w", path, err)
	}

	cfg, err := ParseLayoutConfig(data)
	if err != nil {
		return nil, fmt.Errorf("layout config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseLayoutConfig 解析 YAML 内容（用于嵌入资源和测试）
// 空内容得到完整的默认布局
func ParseLayoutConfig(data []byte) (*LayoutConfig, error) {
	var cfg LayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse layout YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateLayoutConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}
	return &cfg, nil
}

// DefaultLayoutConfig 返回原型布局
func DefaultLayoutConfig() *LayoutConfig {
	var cfg LayoutConfig
	applyDefaults(&cfg)
	return &cfg
}

// Gold 返回初始金币（验证后保证在 0..255 之间）
func (c *LayoutConfig) Gold() uint8 {
	if c.InitialGold == nil {
		return DefaultInitialGold
	}
	return uint8(*c.InitialGold)
}

// Grid 按网格ID查找网格配置
func (c *LayoutConfig) Grid(id types.GridID) (GridConfig, bool) {
	for _, g := range c.Grids {
		if gid, err := types.ParseGridID(g.ID); err == nil && gid == id {
			return g, true
		}
	}
	return GridConfig{}, false
}

// Origin 返回网格原点，未设置时返回 (0, 0)
func (g GridConfig) Origin() (x, y float64) {
	if g.OriginX != nil {
		x = *g.OriginX
	}
	if g.OriginY != nil {
		y = *g.OriginY
	}
	return x, y
}

// applyDefaults 为缺失的字段设置默认值
func applyDefaults(cfg *LayoutConfig) {
	if cfg.ScreenWidth == 0 {
		cfg.ScreenWidth = DefaultScreenWidth
	}
	if cfg.ScreenHeight == 0 {
		cfg.ScreenHeight = DefaultScreenHeight
	}
	if cfg.CellSize == 0 {
		cfg.CellSize = DefaultCellSize
	}
	if cfg.InitialGold == nil {
		gold := DefaultInitialGold
		cfg.InitialGold = &gold
	}

	if len(cfg.Grids) == 0 {
		cfg.Grids = []GridConfig{
			{ID: types.GridShop.String()},
			{ID: types.GridBoard.String()},
			{ID: types.GridReserve.String()},
		}
	}

	for i := range cfg.Grids {
		applyGridDefaults(cfg, &cfg.Grids[i])
	}

	// nil 表示省略，使用默认货架；显式写 "stock: []" 表示商店为空
	if cfg.Stock == nil {
		columns := DefaultShopStock
		if shop, ok := cfg.Grid(types.GridShop); ok && shop.Columns > 0 && shop.Columns < columns {
			columns = shop.Columns
		}
		cfg.Stock = make([]StockConfig, 0, columns)
		for col := 0; col < columns; col++ {
			cfg.Stock = append(cfg.Stock, StockConfig{Col: col, Row: 0, Cost: DefaultUnitCost})
		}
	}
}

// applyGridDefaults 补齐网格尺寸和原点
// 原点使网格水平居中；商店贴着顶部，后备席贴着底部，棋盘垂直居中
func applyGridDefaults(cfg *LayoutConfig, g *GridConfig) {
	id, err := types.ParseGridID(g.ID)
	if err != nil {
		return // 交给 validateLayoutConfig 报错
	}

	if g.Columns == 0 {
		g.Columns = 8
	}
	if g.Rows == 0 {
		if id == types.GridBoard {
			g.Rows = 8
		} else {
			g.Rows = 1
		}
	}

	cell := cfg.CellSize
	if g.OriginX == nil {
		x := float64(cfg.ScreenWidth)/2 - float64(g.Columns-1)/2*cell
		g.OriginX = &x
	}
	if g.OriginY == nil {
		var y float64
		switch id {
		case types.GridShop:
			y = float64(cfg.ScreenHeight) - float64(g.Rows)*cell
		case types.GridBoard:
			y = float64(cfg.ScreenHeight)/2 - float64(g.Rows-1)/2*cell
		case types.GridReserve:
			y = cell
		}
		g.OriginY = &y
	}
}

// validateLayoutConfig 验证布局配置
func validateLayoutConfig(cfg *LayoutConfig) error {
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.CellSize <= 0 {
		return fmt.Errorf("cellSize must be positive, got %g", cfg.CellSize)
	}
	if *cfg.InitialGold < 0 || *cfg.InitialGold > 255 {
		return fmt.Errorf("initialGold must be between 0 and 255, got %d", *cfg.InitialGold)
	}

	seen := make(map[types.GridID]bool)
	for i, g := range cfg.Grids {
		id, err := types.ParseGridID(g.ID)
		if err != nil {
			return fmt.Errorf("grids[%d]: %w", i, err)
		}
		if seen[id] {
			return fmt.Errorf("grids[%d]: duplicate grid id %q", i, g.ID)
		}
		seen[id] = true

		if g.Columns <= 0 || g.Rows <= 0 {
			return fmt.Errorf("grid %s: columns and rows must be positive, got %dx%d", id, g.Columns, g.Rows)
		}
	}
	for _, id := range types.AllGridIDs {
		if !seen[id] {
			return fmt.Errorf("missing grid %q", id)
		}
	}

	shop, _ := cfg.Grid(types.GridShop)
	occupied := make(map[types.GridIndex]bool)
	for i, s := range cfg.Stock {
		if s.Col < 0 || s.Col >= shop.Columns || s.Row < 0 || s.Row >= shop.Rows {
			return fmt.Errorf("stock[%d]: slot (%d,%d) is outside the %dx%d shop", i, s.Col, s.Row, shop.Columns, shop.Rows)
		}
		if s.Cost < 0 || s.Cost > 255 {
			return fmt.Errorf("stock[%d]: cost must be between 0 and 255, got %d", i, s.Cost)
		}
		idx := types.GridIndex{Col: s.Col, Row: s.Row}
		if occupied[idx] {
			return fmt.Errorf("stock[%d]: shop slot %v is already stocked", i, idx)
		}
		occupied[idx] = true
	}

	return nil
}
