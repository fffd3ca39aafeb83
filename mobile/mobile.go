//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建：
//
//	# Android
//	cp -r data mobile/data && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.buyornot.app -o build/android/buyornot.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/data && ebitenmobile bind -target ios -tags mobile -o build/ios/BuyOrNot.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/buyornot/pkg/app"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/embedded"
)

func init() {
	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	env, err := config.LoadRuntimeEnv()
	if err != nil {
		log.Printf("环境变量解析失败，使用默认值: %v", err)
		env = config.RuntimeEnv{APIBaseURL: config.DefaultAPIBaseURL, NarrativeConfig: "data/narrative.yaml"}
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:             true,
		NarrativeConfigPath: env.NarrativeConfig,
		APIBaseURL:          env.APIBaseURL,
		AccessToken:         env.AccessToken,
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
