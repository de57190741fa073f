package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/autobattler/pkg/types"
)

// TestDefaultLayoutMatchesPrototype 默认布局：800x600，格子 48，商店在顶部，棋盘居中，后备席在底部
func TestDefaultLayoutMatchesPrototype(t *testing.T) {
	cfg, err := ParseLayoutConfig(nil)
	if err != nil {
		t.Fatalf("ParseLayoutConfig(nil) failed: %v", err)
	}

	if cfg.ScreenWidth != 800 || cfg.ScreenHeight != 600 {
		t.Errorf("Screen: got %dx%d, want 800x600", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.CellSize != 48 {
		t.Errorf("CellSize: got %g, want 48", cfg.CellSize)
	}
	if cfg.Gold() != 10 {
		t.Errorf("Gold: got %d, want 10", cfg.Gold())
	}

	tests := []struct {
		id            types.GridID
		columns, rows int
		originX       float64
		originY       float64
	}{
		{types.GridShop, 8, 1, 232, 552},
		{types.GridBoard, 8, 8, 232, 132},
		{types.GridReserve, 8, 1, 232, 48},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			g, ok := cfg.Grid(tt.id)
			if !ok {
				t.Fatalf("grid %v not found", tt.id)
			}
			if g.Columns != tt.columns || g.Rows != tt.rows {
				t.Errorf("Size: got %dx%d, want %dx%d", g.Columns, g.Rows, tt.columns, tt.rows)
			}
			x, y := g.Origin()
			if x != tt.originX || y != tt.originY {
				t.Errorf("Origin: got (%g, %g), want (%g, %g)", x, y, tt.originX, tt.originY)
			}
		})
	}

	if len(cfg.Stock) != 8 {
		t.Fatalf("Stock: got %d units, want 8", len(cfg.Stock))
	}
	for i, s := range cfg.Stock {
		if s.Col != i || s.Row != 0 || s.Cost != 1 {
			t.Errorf("stock[%d] = %+v, want {Col:%d Row:0 Cost:1}", i, s, i)
		}
	}
}

// TestDefaultLayoutConfigEqualsParsedEmpty DefaultLayoutConfig 与解析空文件的结果一致
func TestDefaultLayoutConfigEqualsParsedEmpty(t *testing.T) {
	def := DefaultLayoutConfig()
	if err := validateLayoutConfig(def); err != nil {
		t.Fatalf("default layout should be valid: %v", err)
	}
	if def.Gold() != DefaultInitialGold || len(def.Grids) != 3 || len(def.Stock) != DefaultShopStock {
		t.Errorf("unexpected default layout: %+v", def)
	}
}

// TestParseLayoutOverrides 显式字段覆盖默认值，缺省的原点仍自动计算
func TestParseLayoutOverrides(t *testing.T) {
	yamlData := `
screenWidth: 1000
screenHeight: 700
cellSize: 50
initialGold: 0
grids:
  - id: Shop
    columns: 5
  - id: board
    columns: 6
    rows: 4
    originX: 10
    originY: 20
  - id: reserve
stock:
  - {col: 4, row: 0, cost: 3}
`
	cfg, err := ParseLayoutConfig([]byte(yamlData))
	if err != nil {
		t.Fatalf("ParseLayoutConfig failed: %v", err)
	}

	if cfg.Gold() != 0 {
		t.Errorf("Gold: explicit 0 should be kept, got %d", cfg.Gold())
	}

	shop, _ := cfg.Grid(types.GridShop)
	if x, y := shop.Origin(); x != 400 || y != 650 {
		t.Errorf("Shop origin: got (%g, %g), want (400, 650)", x, y)
	}

	board, _ := cfg.Grid(types.GridBoard)
	if x, y := board.Origin(); x != 10 || y != 20 {
		t.Errorf("Board origin: got (%g, %g), want (10, 20)", x, y)
	}
	if board.Columns != 6 || board.Rows != 4 {
		t.Errorf("Board size: got %dx%d, want 6x4", board.Columns, board.Rows)
	}

	reserve, _ := cfg.Grid(types.GridReserve)
	if x, y := reserve.Origin(); x != 325 || y != 50 {
		t.Errorf("Reserve origin: got (%g, %g), want (325, 50)", x, y)
	}

	if len(cfg.Stock) != 1 || cfg.Stock[0].Cost != 3 {
		t.Errorf("Stock: got %+v", cfg.Stock)
	}
}

// TestDefaultStockFollowsShopWidth 商店少于 8 格时默认货架只填满商店
func TestDefaultStockFollowsShopWidth(t *testing.T) {
	cfg, err := ParseLayoutConfig([]byte("grids:\n  - {id: shop, columns: 3}\n  - {id: board}\n  - {id: reserve}\n"))
	if err != nil {
		t.Fatalf("ParseLayoutConfig failed: %v", err)
	}
	if len(cfg.Stock) != 3 {
		t.Errorf("Stock: got %d units, want 3", len(cfg.Stock))
	}
}

// TestInvalidLayoutRejected 各种非法配置
func TestInvalidLayoutRejected(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "未知网格",
			yaml:    "grids:\n  - {id: shop}\n  - {id: board}\n  - {id: bench}\n",
			wantErr: "unknown grid id",
		},
		{
			name:    "重复网格",
			yaml:    "grids:\n  - {id: shop}\n  - {id: board}\n  - {id: board}\n",
			wantErr: "duplicate grid id",
		},
		{
			name:    "缺少网格",
			yaml:    "grids:\n  - {id: shop}\n  - {id: board}\n",
			wantErr: "missing grid",
		},
		{
			name:    "负的列数",
			yaml:    "grids:\n  - {id: shop, columns: -1}\n  - {id: board}\n  - {id: reserve}\n",
			wantErr: "must be positive",
		},
		{
			name:    "负的格子大小",
			yaml:    "cellSize: -4\n",
			wantErr: "cellSize",
		},
		{
			name:    "负的屏幕尺寸",
			yaml:    "screenWidth: -800\n",
			wantErr: "screen size",
		},
		{
			name:    "货架超出商店",
			yaml:    "stock:\n  - {col: 8, row: 0, cost: 1}\n",
			wantErr: "outside",
		},
		{
			name:    "货架重复",
			yaml:    "stock:\n  - {col: 1, row: 0, cost: 1}\n  - {col: 1, row: 0, cost: 2}\n",
			wantErr: "already stocked",
		},
		{
			name:    "费用超出范围",
			yaml:    "stock:\n  - {col: 1, row: 0, cost: 256}\n",
			wantErr: "cost",
		},
		{
			name:    "初始金币超出范围",
			yaml:    "initialGold: 300\n",
			wantErr: "initialGold",
		},
		{
			name:    "YAML 语法错误",
			yaml:    "grids: [\n",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayoutConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestLoadLayoutConfigFromFile 从文件加载
func TestLoadLayoutConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "layout.yaml")
	if err := os.WriteFile(path, []byte("initialGold: 25\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadLayoutConfig(path)
	if err != nil {
		t.Fatalf("LoadLayoutConfig failed: %v", err)
	}
	if cfg.Gold() != 25 {
		t.Errorf("Gold: got %d, want 25", cfg.Gold())
	}
}

// TestLoadLayoutConfigMissingFile 文件不存在时返回错误
func TestLoadLayoutConfigMissingFile(t *testing.T) {
	_, err := LoadLayoutConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}
