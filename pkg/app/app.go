// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/autobattler/pkg/config"
	"github.com/decker502/autobattler/pkg/embedded"
	"github.com/decker502/autobattler/pkg/game"
	"github.com/decker502/autobattler/pkg/scenes"
)

// DefaultLayoutPath 嵌入资源中的布局配置路径
const DefaultLayoutPath = "data/layout.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 布局配置文件路径，为空则使用嵌入的 data/layout.yaml
	ConfigPath string
	// Mute 不创建音频上下文
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	layout                   *config.LayoutConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入的布局配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	layout, err := LoadLayout(cfg)
	if err != nil {
		return nil, fmt.Errorf("布局配置加载失败: %w", err)
	}

	var audioManager *game.AudioManager
	if !cfg.Mute {
		audioManager = game.NewAudioManager(audio.NewContext(game.SampleRate))
		audioManager.PreloadSounds(game.SoundPlace, game.SoundBuzzer)
		log.Printf("[App] AudioManager initialized")
	}

	boardScene, err := scenes.NewBoardScene(layout, audioManager)
	if err != nil {
		return nil, fmt.Errorf("场景初始化失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(boardScene)

	return &App{
		sceneManager: sceneManager,
		layout:       layout,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadLayout 按启动配置加载布局
// 优先使用 ConfigPath；否则读取嵌入资源；嵌入资源未初始化时使用默认布局
func LoadLayout(cfg Config) (*config.LayoutConfig, error) {
	if cfg.ConfigPath != "" {
		log.Printf("[Config] 加载布局配置: %s", cfg.ConfigPath)
		return config.LoadLayoutConfig(cfg.ConfigPath)
	}

	if !embedded.IsInitialized() {
		log.Printf("[Config] 嵌入资源未初始化，使用默认布局")
		return config.DefaultLayoutConfig(), nil
	}

	data, err := embedded.ReadFile(DefaultLayoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", DefaultLayoutPath, err)
	}
	layout, err := config.ParseLayoutConfig(data)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", DefaultLayoutPath, err)
	}
	log.Printf("[Config] 加载嵌入布局配置: %s", DefaultLayoutPath)
	return layout, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// Escape 退出
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[App] Escape pressed, exiting")
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.layout.ScreenWidth, a.layout.ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.layout.ScreenWidth, a.layout.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.layout.ScreenWidth, a.layout.ScreenHeight
}

// WindowSize 返回布局配置中的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.layout.ScreenWidth, a.layout.ScreenHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
