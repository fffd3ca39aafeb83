package game

import (
	"math"

	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/utils"
)

// Tap 一次点击（未发生拖拽的按下-释放）
type Tap struct {
	X, Y float64
}

// ScrollSurface 叙事页面的滚动容器
//
// 把鼠标滚轮与拖拽转换为 scrollTop，并把 scrollTop 限制在内容范围内；
// 同时识别点击。实现 systems.ViewportHost。
type ScrollSurface struct {
	sceneOne      config.SceneOneConfig
	scrollTop     float64
	width, height float64
	drag          *utils.DragManager
}

// NewScrollSurface 创建滚动容器，初始尺寸为逻辑屏幕尺寸
func NewScrollSurface(sceneOne config.SceneOneConfig) *ScrollSurface {
	return &ScrollSurface{
		sceneOne: sceneOne,
		width:    config.SurfaceWidth,
		height:   config.SurfaceHeight,
		drag:     utils.NewDragManager(),
	}
}

// ScrollTop 当前滚动偏移
func (s *ScrollSurface) ScrollTop() float64 {
	return s.scrollTop
}

// ContainerSize 视口尺寸
func (s *ScrollSurface) ContainerSize() (width, height float64) {
	return s.width, s.height
}

// SetViewportSize 更新视口尺寸，并重新限制滚动偏移
func (s *ScrollSurface) SetViewportSize(width, height float64) {
	s.width, s.height = math.Max(0, width), math.Max(0, height)
	s.ScrollTo(s.scrollTop)
}

// MaxScrollTop 当前尺寸下可滚动的最大偏移
func (s *ScrollSurface) MaxScrollTop() float64 {
	return config.MaxScrollTop(s.sceneOne, s.height)
}

// ScrollTo 滚动到指定偏移（自动限制范围）
func (s *ScrollSurface) ScrollTo(top float64) {
	if math.IsNaN(top) {
		return
	}
	s.scrollTop = math.Min(math.Max(top, 0), s.MaxScrollTop())
}

// ScrollBy 相对滚动
func (s *ScrollSurface) ScrollBy(dy float64) {
	s.ScrollTo(s.scrollTop + dy)
}

// Update 读取本帧输入（每帧调用一次）
// 返回本帧识别到的点击
func (s *ScrollSurface) Update() (Tap, bool) {
	return s.HandleInput(utils.SamplePointer(s.drag.GetInfo().TouchID), utils.WheelDeltaY())
}

// HandleInput 用一帧的指针采样与滚轮刻度更新滚动
//
// 参数：
//   - sample: 指针采样
//   - wheel: 滚轮刻度（向下为正）
func (s *ScrollSurface) HandleInput(sample utils.PointerSample, wheel float64) (Tap, bool) {
	if wheel != 0 {
		s.ScrollBy(wheel * config.WheelStep)
	}

	s.drag.Step(sample)
	if s.drag.IsDragging() {
		// 内容跟随手指：手指上移时向下滚动
		_, dy := s.drag.FrameDelta()
		s.ScrollBy(-float64(dy))
	}

	if s.drag.IsTap(config.TapSlop) {
		info := s.drag.GetInfo()
		return Tap{X: float64(info.CurrentX), Y: float64(info.CurrentY)}, true
	}
	return Tap{}, false
}
