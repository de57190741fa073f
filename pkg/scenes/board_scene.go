package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/autobattler/pkg/components"
	"github.com/decker502/autobattler/pkg/config"
	"github.com/decker502/autobattler/pkg/ecs"
	"github.com/decker502/autobattler/pkg/event"
	"github.com/decker502/autobattler/pkg/game"
	"github.com/decker502/autobattler/pkg/systems"
	"github.com/decker502/autobattler/pkg/types"
	"github.com/decker502/autobattler/pkg/utils"
)

// 绘制参数
const (
	slotBorderWidth = 2.0
	// unitInset 单位方块相对格子边缘的内缩
	unitInset = 6.0
)

var (
	backgroundColor = color.RGBA{R: 30, G: 32, B: 40, A: 255}
	textColor       = color.RGBA{R: 240, G: 220, B: 120, A: 255}
	unitColor       = color.RGBA{R: 90, G: 160, B: 230, A: 255}
	draggedColor    = color.RGBA{R: 140, G: 200, B: 255, A: 255}

	slotFillColors = map[types.GridID]color.RGBA{
		types.GridShop:    {R: 70, G: 55, B: 35, A: 255},
		types.GridBoard:   {R: 45, G: 70, B: 45, A: 255},
		types.GridReserve: {R: 55, G: 55, B: 70, A: 255},
	}
	slotBorderColor = color.RGBA{R: 20, G: 20, B: 24, A: 255}
)

// PointerSource 返回当前帧的指针状态（屏幕坐标）
type PointerSource func() utils.PointerState

// BoardScene 是唯一的游戏场景：商店、棋盘、后备席和金币显示
//
// Update 每帧采集一次输入，投影到世界坐标后交给放置系统；
// Draw 只读取组件，把世界坐标翻转为屏幕坐标绘制。
type BoardScene struct {
	entityManager *ecs.EntityManager
	world         *BoardWorld
	placement     *systems.PlacementSystem
	dispatcher    *event.Dispatcher

	screenHeight float64
	cellSize     float64

	pointer PointerSource
	face    text.Face
}

// NewBoardScene 按布局配置创建场景
//
// 参数：
//   - cfg: 已验证的布局配置
//   - audioManager: 音效管理器，可为 nil
//
// 返回：
//   - *BoardScene: 场景实例
//   - error: 世界初始化失败时返回错误
func NewBoardScene(cfg *config.LayoutConfig, audioManager *game.AudioManager) (*BoardScene, error) {
	em := ecs.NewEntityManager()
	world, err := BuildBoardWorld(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build board world: %w", err)
	}

	dispatcher := event.NewDispatcher()
	if audioManager != nil {
		dispatcher.Subscribe(systems.EventPlacementCommitted, audioManager.SoundListener(game.SoundPlace))
		dispatcher.Subscribe(systems.EventPickupRejected, audioManager.SoundListener(game.SoundBuzzer))
	}

	s := &BoardScene{
		entityManager: em,
		world:         world,
		placement:     systems.NewPlacementSystem(em, world.Grids, world.Purse, dispatcher),
		dispatcher:    dispatcher,
		screenHeight:  float64(cfg.ScreenHeight),
		cellSize:      cfg.CellSize,
		pointer:       utils.GetPointerState,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}

	log.Printf("[BoardScene] 场景初始化完成 (%dx%d)", cfg.ScreenWidth, cfg.ScreenHeight)
	return s, nil
}

// SetPointerSource 替换输入来源（测试和回放使用）
func (s *BoardScene) SetPointerSource(source PointerSource) {
	s.pointer = source
}

// World 返回场景的世界
func (s *BoardScene) World() *BoardWorld {
	return s.world
}

// Placement 返回放置系统
func (s *BoardScene) Placement() *systems.PlacementSystem {
	return s.placement
}

// Dispatcher 返回场景的事件分发器，供外部订阅放置事件
func (s *BoardScene) Dispatcher() *event.Dispatcher {
	return s.dispatcher
}

// Update 推进一帧
func (s *BoardScene) Update(deltaTime float64) {
	s.placement.Update(InputFrameFromPointer(s.pointer(), s.screenHeight))
	s.entityManager.RemoveMarkedEntities()
}

// InputFrameFromPointer 把屏幕坐标的指针状态投影为世界坐标的输入帧
func InputFrameFromPointer(ps utils.PointerState, screenHeight float64) systems.InputFrame {
	frame := systems.InputFrame{
		HasPointer:  ps.Available,
		PrimaryDown: ps.Pressed,
	}
	if ps.Available {
		frame.X, frame.Y = utils.ScreenToWorld(float64(ps.X), float64(ps.Y), screenHeight)
	}
	return frame
}

// Draw 绘制场景
func (s *BoardScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, grid := range s.world.Grids.Grids() {
		s.drawGrid(screen, grid)
	}

	dragged := ecs.InvalidEntity
	if drag, ok := s.placement.Drag(); ok {
		dragged = drag.Entity
	}

	// 被拖拽的单位最后绘制，保证在最上层
	for _, id := range ecs.GetEntitiesWith2[*components.UnitComponent, *components.PositionComponent](s.entityManager) {
		if id != dragged {
			s.drawUnit(screen, id, unitColor)
		}
	}
	if dragged != ecs.InvalidEntity {
		s.drawUnit(screen, dragged, draggedColor)
	}

	s.drawGoldCounter(screen)
}

func (s *BoardScene) drawGrid(screen *ebiten.Image, grid *components.SlotGridComponent) {
	fill := slotFillColors[grid.ID]
	half := grid.CellSize / 2
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			cx, cy := utils.GridIndexToWorld(col, row, grid.OriginX, grid.OriginY, grid.CellSize)
			sx, sy := utils.WorldToScreen(cx-half, cy+half, s.screenHeight)
			vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(grid.CellSize), float32(grid.CellSize), fill, false)
			vector.StrokeRect(screen, float32(sx), float32(sy), float32(grid.CellSize), float32(grid.CellSize), slotBorderWidth, slotBorderColor, false)
		}
	}
}

func (s *BoardScene) drawUnit(screen *ebiten.Image, id ecs.EntityID, clr color.Color) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)
	if !ok {
		return
	}

	size := s.cellSize - 2*unitInset
	sx, sy := utils.WorldToScreen(pos.X-size/2, pos.Y+size/2, s.screenHeight)
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(size), float32(size), clr, true)

	// 费用标在单位左上角
	op := &text.DrawOptions{}
	op.GeoM.Translate(sx+2, sy+1)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, strconv.Itoa(int(unit.Cost)), s.face, op)
}

func (s *BoardScene) drawGoldCounter(screen *ebiten.Image) {
	label, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, s.world.GoldEntity)
	if !ok {
		return
	}
	x, y := goldCounterMargin, goldCounterMargin
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.world.GoldEntity); ok {
		x, y = utils.WorldToScreen(pos.X, pos.Y, s.screenHeight)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, label.Label+label.Text, s.face, op)
}
