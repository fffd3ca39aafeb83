package systems

import (
	"errors"
	"log"

	"github.com/decker502/buyornot/pkg/components"
)

// ErrTrackerAttached 跟踪器已经绑定了宿主
var ErrTrackerAttached = errors.New("viewport tracker is already attached")

// ViewportHost 可滚动容器
// 由渲染宿主实现（桌面与移动端为 game.ScrollSurface，测试中为假实现）
type ViewportHost interface {
	ScrollTop() float64
	ContainerSize() (width, height float64)
}

// ViewportListener 接收合并后的视口状态
type ViewportListener func(state components.ScrollState)

// ViewportTracker 把宿主的滚动与尺寸变化按帧合并后上报
//
// 一帧内的多次原始滚动事件只产生一次上报（绘制节奏），
// 状态没有变化的帧不上报；Detach 之后不会再有任何上报。
type ViewportTracker struct {
	host     ViewportHost
	listener ViewportListener
	last     components.ScrollState
	reports  int
}

// NewViewportTracker 创建未绑定的跟踪器
func NewViewportTracker() *ViewportTracker {
	return &ViewportTracker{}
}

// Attach 绑定宿主并立即同步测量一次
func (t *ViewportTracker) Attach(host ViewportHost, listener ViewportListener) error {
	if t.host != nil {
		return ErrTrackerAttached
	}
	if host == nil || listener == nil {
		return errors.New("viewport tracker requires a host and a listener")
	}
	t.host = host
	t.listener = listener
	t.last = t.measure()
	t.report(t.last)
	log.Printf("[ViewportTracker] Attached (%.0fx%.0f, scrollTop=%.1f)",
		t.last.ContainerWidth, t.last.ContainerHeight, t.last.ScrollTop)
	return nil
}

// Update 每帧调用一次，状态变化时上报
func (t *ViewportTracker) Update(dt float64) {
	if t.host == nil {
		return
	}
	state := t.measure()
	if state == t.last {
		return
	}
	t.last = state
	t.report(state)
}

// Detach 解除绑定；未绑定时调用是空操作
func (t *ViewportTracker) Detach() {
	if t.host == nil {
		return
	}
	t.host = nil
	t.listener = nil
	log.Printf("[ViewportTracker] Detached after %d reports", t.reports)
}

// Attached 是否已绑定宿主
func (t *ViewportTracker) Attached() bool {
	return t.host != nil
}

// Last 返回最近一次上报的状态
func (t *ViewportTracker) Last() components.ScrollState {
	return t.last
}

func (t *ViewportTracker) measure() components.ScrollState {
	w, h := t.host.ContainerSize()
	return components.ScrollState{
		ScrollTop:       t.host.ScrollTop(),
		ContainerWidth:  w,
		ContainerHeight: h,
	}
}

func (t *ViewportTracker) report(state components.ScrollState) {
	t.reports++
	t.listener(state)
}
