package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the app (e.g., the pre-register narrative, the feed).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被切换走或程序退出时释放资源
//
// 实现此接口的场景会在以下时机被调用 Dispose()：
//   - SceneManager.SwitchTo 切换到其他场景
//   - 窗口关闭
//
// Dispose 必须同步取消场景持有的全部定时器与回调，可重复调用
type Disposable interface {
	Dispose()
}

// Resizable 是一个可选接口，接收逻辑视口尺寸变化
type Resizable interface {
	SetViewportSize(width, height float64)
}
