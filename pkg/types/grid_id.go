// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"
)

// GridID 标识格子所属的网格（商店、棋盘、后备席）
type GridID int

const (
	// GridShop 商店行，单位从这里被购买
	GridShop GridID = iota
	// GridBoard 棋盘
	GridBoard
	// GridReserve 后备席
	GridReserve
)

// AllGridIDs 按碰撞检测的优先级顺序列出所有网格
var AllGridIDs = []GridID{GridShop, GridBoard, GridReserve}

// String 返回网格的字符串表示，与配置文件中的写法一致
func (g GridID) String() string {
	switch g {
	case GridShop:
		return "shop"
	case GridBoard:
		return "board"
	case GridReserve:
		return "reserve"
	default:
		return fmt.Sprintf("grid(%d)", int(g))
	}
}

// ParseGridID 从配置字符串解析网格ID（不区分大小写）
func ParseGridID(s string) (GridID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shop":
		return GridShop, nil
	case "board":
		return GridBoard, nil
	case "reserve":
		return GridReserve, nil
	}
	return 0, fmt.Errorf("unknown grid id %q (valid: shop, board, reserve)", s)
}

// GridIndex 是网格内的格子坐标
type GridIndex struct {
	Col int
	Row int
}

func (i GridIndex) String() string {
	return fmt.Sprintf("(%d,%d)", i.Col, i.Row)
}
