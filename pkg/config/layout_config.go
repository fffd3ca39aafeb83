package config

// 布局配置常量
// 本文件定义了预注册叙事页面的布局参数
// 坐标使用"视口坐标系"（相对于滚动容器左上角，不随滚动变化）

// Surface Configuration (滚动容器配置)
const (
	// SurfaceWidth 是逻辑屏幕宽度（与移动端页面的 max-width 540 一致）
	SurfaceWidth = 540

	// SurfaceHeight 是逻辑屏幕高度
	SurfaceHeight = 960

	// WheelStep 是一次鼠标滚轮刻度对应的滚动像素
	WheelStep = 60.0

	// TapSlop 是区分点击与拖拽的位移阈值（像素）
	TapSlop = 8.0
)

// Section 2+ Layout (Scene 1 之后的场景布局)
const (
	// CardMarginX 卡片左右边距
	CardMarginX = 20.0

	// VoteButtonHeight 投票按钮高度（问卷场景为 62，Feed 卡片为 48）
	VoteButtonHeight = 62.0

	// FeedOptionHeight Feed 卡片投票选项高度
	FeedOptionHeight = 48.0

	// VoteButtonGap 按钮之间的间距
	VoteButtonGap = 10.0

	// ShortcutButtonHeight 结果页"바로가기"按钮高度
	ShortcutButtonHeight = 64.0
)

// ContentHeight 返回整个可滚动内容的高度
//
// 内容由 Scene 1 的动画区（scrollDistance）、保持区（holdDistance）
// 以及之后固定一屏的叙事场景组成
func ContentHeight(sceneOne SceneOneConfig, viewportHeight float64) float64 {
	return sceneOne.ScrollDistance + sceneOne.HoldDistance + viewportHeight
}

// MaxScrollTop 返回可滚动的最大偏移
func MaxScrollTop(sceneOne SceneOneConfig, viewportHeight float64) float64 {
	maxTop := ContentHeight(sceneOne, viewportHeight) - viewportHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

// Rect 视口坐标系中的矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否在矩形内（左闭右开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// StackButtons 在给定区域底部向上排列 n 个等高按钮，返回从上到下的矩形
//
// 参数：
//   - width, height: 容器尺寸
//   - n: 按钮数量
//   - buttonHeight: 单个按钮高度
//   - bottomMargin: 最后一个按钮距容器底部的距离
func StackButtons(width, height float64, n int, buttonHeight, bottomMargin float64) []Rect {
	if n <= 0 {
		return nil
	}
	rects := make([]Rect, n)
	total := float64(n)*buttonHeight + float64(n-1)*VoteButtonGap
	top := height - bottomMargin - total
	for i := 0; i < n; i++ {
		rects[i] = Rect{
			X: CardMarginX,
			Y: top + float64(i)*(buttonHeight+VoteButtonGap),
			W: width - 2*CardMarginX,
			H: buttonHeight,
		}
	}
	return rects
}
