//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.memory -o build/android/memory.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Memory.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/memory/pkg/app"
	"github.com/decker502/memory/pkg/config"
	"github.com/decker502/memory/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	data, err := embedded.ReadFile(embedded.ConfigPath)
	if err != nil {
		log.Fatalf("读取内置配置失败: %v", err)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		log.Fatalf("内置配置无效: %v", err)
	}

	// 移动端没有磁盘卡牌目录：使用内置图片或程序生成的卡面
	gameApp, err := app.NewApp(app.Config{
		Verbose:    true,
		Game:       cfg,
		CardSource: embedded.CardSource(),
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	gameApp.ApplyWindowSettings()
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
