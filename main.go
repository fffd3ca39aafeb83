// Command buyornot 运行"살까말까"事前预约叙事页面
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose            Enable verbose logging
//	--config <path>      Narrative config (embedded data/ path or file)
//	--api <url>          API base URL
//	--scene <name>       Start scene: preregister | feed
//
// Environment variables (flags win):
//
//	BUYORNOT_API_BASE_URL, BUYORNOT_ACCESS_TOKEN, BUYORNOT_VERBOSE, BUYORNOT_NARRATIVE_CONFIG
package main

import (
	"flag"
	"log"

	"github.com/decker502/buyornot/pkg/app"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

// 桌面窗口尺寸（逻辑尺寸 540x960 的 3/4）
const (
	windowWidth  = 405
	windowHeight = 720
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag  = flag.String("config", "", "Narrative config path (defaults to BUYORNOT_NARRATIVE_CONFIG)")
	apiFlag     = flag.String("api", "", "API base URL (defaults to BUYORNOT_API_BASE_URL)")
	sceneFlag   = flag.String("scene", app.ScenePreRegister, "Start scene: preregister | feed")
)

func main() {
	flag.Parse()

	env, err := config.LoadRuntimeEnv()
	if err != nil {
		log.Fatalf("环境变量解析失败: %v", err)
	}

	// 初始化嵌入资源
	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:             *verboseFlag || env.Verbose,
		NarrativeConfigPath: env.NarrativeConfig,
		APIBaseURL:          env.APIBaseURL,
		AccessToken:         env.AccessToken,
		StartScene:          *sceneFlag,
	}
	if *configFlag != "" {
		cfg.NarrativeConfigPath = *configFlag
	}
	if *apiFlag != "" {
		cfg.APIBaseURL = *apiFlag
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("BUY OR NOT - 살까말까")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatalf("运行失败: %v", err)
	}
}
