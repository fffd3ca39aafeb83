// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/decker502/buyornot/pkg/api"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/game"
	"github.com/decker502/buyornot/pkg/scenes"
	"github.com/decker502/buyornot/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 场景名称
const (
	ScenePreRegister = "preregister"
	SceneFeed        = scenes.SceneNameFeed
)

// AppName gdata 存储使用的应用名
const AppName = "buyornot"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// NarrativeConfigPath 叙事配置路径（嵌入资源或文件），为空使用默认配置
	NarrativeConfigPath string
	// APIBaseURL 后端地址
	APIBaseURL string
	// AccessToken 可选的 Bearer token
	AccessToken string
	// StartScene 启动场景，默认 "preregister"
	StartScene string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool

	width, height int
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	narrative, err := config.LoadNarrativeConfig(cfg.NarrativeConfigPath)
	if err != nil {
		return nil, fmt.Errorf("叙事配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载叙事配置: %q (thanksHold=%s)", cfg.NarrativeConfigPath, narrative.Timings.ThanksHoldAdvance)

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}
	client := api.NewClient(baseURL, api.WithAccessToken(cfg.AccessToken))
	log.Printf("[App] API base URL: %s", client.BaseURL())

	resourceManager := game.NewResourceManager()
	records := game.NewVoteRecordManager(game.OpenStorage(AppName))

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		switch name {
		case ScenePreRegister:
			scene, err := scenes.NewPreRegisterScene(resourceManager, sceneManager, records, narrative)
			if err != nil {
				log.Printf("[App] 无法创建叙事场景: %v", err)
				return nil
			}
			return scene
		case SceneFeed:
			return scenes.NewFeedScene(resourceManager, sceneManager, client, records, narrative)
		default:
			return nil
		}
	})

	start := cfg.StartScene
	if start == "" {
		start = ScenePreRegister
	}
	if !sceneManager.LoadScene(start) {
		return nil, fmt.Errorf("无法加载启动场景 %q", start)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
		width:        config.SurfaceWidth,
		height:       config.SurfaceHeight,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.sceneManager.Dispose()
		return ebiten.Termination
	}

	// F11 切换全屏（仅桌面端）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
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

// Layout 返回逻辑屏幕尺寸
// 逻辑宽度固定，高度随窗口宽高比变化，并通知当前场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = LogicalSize(outsideWidth, outsideHeight)
	a.sceneManager.Layout(float64(a.width), float64(a.height))
	return a.width, a.height
}

// LogicalSize 按窗口尺寸计算逻辑尺寸：宽度固定为 SurfaceWidth
func LogicalSize(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.SurfaceWidth, config.SurfaceHeight
	}
	h := int(math.Round(float64(config.SurfaceWidth) * float64(outsideHeight) / float64(outsideWidth)))
	return config.SurfaceWidth, max(h, config.SurfaceWidth)
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
