package components

// ScrollState 滚动容器的当前状态
// 由 ViewportTracker 持续产生，只表示"现在"，不保留历史
type ScrollState struct {
	// ScrollTop 当前滚动偏移（像素）
	ScrollTop float64
	// ContainerWidth 容器宽度（像素），未测量时为 0
	ContainerWidth float64
	// ContainerHeight 容器高度（像素），未测量时为 0
	ContainerHeight float64
}

// CharacterPosition Scene 1 角色的位置与尺寸
//
// Bottom/Left 为像素，TranslateXPercent 为相对自身宽度的水平平移百分比，
// HeightPercent 为相对容器高度的百分比
type CharacterPosition struct {
	Bottom            float64
	Left              float64
	TranslateXPercent float64
	HeightPercent     float64
}

// SceneOpacities Scene 1 各元素的透明度（0..1）
type SceneOpacities struct {
	Title   float64
	Hint    float64
	BubbleA float64
	BubbleB float64
	// SceneOneFadeOut 覆盖 Scene 1 的全屏白色遮罩透明度
	SceneOneFadeOut float64
}

// SceneOneLayout 辅助 UI 的布局锚点（像素）
type SceneOneLayout struct {
	LogoTop    float64
	BubbleATop float64
	BubbleBTop float64
	HintBottom float64
}

// SceneGeometry Scene 1 的派生几何参数
// 纯函数输出，每次 ScrollState 变化时重新计算，没有独立生命周期
type SceneGeometry struct {
	Progress      float64
	EasedProgress float64
	Character     CharacterPosition
	Opacities     SceneOpacities
	Layout        SceneOneLayout
}
