package scenes

import (
	"github.com/decker502/buyornot/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene           = (*PreRegisterScene)(nil)
	_ game.Disposable = (*PreRegisterScene)(nil)
	_ game.Resizable  = (*PreRegisterScene)(nil)
	_ Scene           = (*FeedScene)(nil)
	_ game.Disposable = (*FeedScene)(nil)
	_ game.Resizable  = (*FeedScene)(nil)
)
