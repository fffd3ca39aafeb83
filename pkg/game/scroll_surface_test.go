package game

import (
	"math"
	"testing"

	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/utils"
)

func press(x, y int) utils.PointerSample {
	return utils.PointerSample{Pressed: true, X: x, Y: y, TouchID: -1}
}

func release(x, y int) utils.PointerSample {
	return utils.PointerSample{X: x, Y: y, TouchID: -1}
}

func newTestSurface() *ScrollSurface {
	return NewScrollSurface(config.DefaultSceneOneConfig())
}

// TestScrollSurfaceClamp 滚动偏移限制在 [0, D+H]
func TestScrollSurfaceClamp(t *testing.T) {
	s := newTestSurface()
	maxTop := 1200.0 + 667.0

	tests := []struct {
		name string
		to   float64
		want float64
	}{
		{"负数", -50, 0},
		{"中间", 600, 600},
		{"最大", maxTop, maxTop},
		{"超出", 1e9, maxTop},
		{"正无穷", math.Inf(1), maxTop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.ScrollTo(tt.to)
			if s.ScrollTop() != tt.want {
				t.Errorf("ScrollTop() = %v, want %v", s.ScrollTop(), tt.want)
			}
		})
	}

	s.ScrollTo(300)
	s.ScrollTo(math.NaN())
	if s.ScrollTop() != 300 {
		t.Errorf("NaN 应被忽略, ScrollTop() = %v", s.ScrollTop())
	}
}

// TestScrollSurfaceWheel 滚轮按固定步长滚动
func TestScrollSurfaceWheel(t *testing.T) {
	s := newTestSurface()
	s.HandleInput(release(0, 0), 2)
	if s.ScrollTop() != 2*config.WheelStep {
		t.Errorf("ScrollTop() = %v, want %v", s.ScrollTop(), 2*config.WheelStep)
	}
	s.HandleInput(release(0, 0), -10)
	if s.ScrollTop() != 0 {
		t.Errorf("ScrollTop() = %v, want 0", s.ScrollTop())
	}
}

// TestScrollSurfaceDrag 手指上移时内容向下滚动，拖拽不算点击
func TestScrollSurfaceDrag(t *testing.T) {
	s := newTestSurface()

	frames := []utils.PointerSample{press(270, 800), press(270, 700), press(270, 500), release(270, 500)}
	var tapped bool
	for _, f := range frames {
		if _, ok := s.HandleInput(f, 0); ok {
			tapped = true
		}
	}
	if s.ScrollTop() != 300 {
		t.Errorf("ScrollTop() = %v, want 300", s.ScrollTop())
	}
	if tapped {
		t.Error("拖拽不应识别为点击")
	}
}

// TestScrollSurfaceTap 原地按下释放识别为点击
func TestScrollSurfaceTap(t *testing.T) {
	s := newTestSurface()
	s.HandleInput(press(100, 200), 0)
	s.HandleInput(press(102, 201), 0)
	tap, ok := s.HandleInput(release(102, 201), 0)
	if !ok {
		t.Fatal("Expected a tap")
	}
	if tap.X != 102 || tap.Y != 201 {
		t.Errorf("tap = %+v", tap)
	}
}

// TestScrollSurfaceResize 视口变化后重新限制滚动偏移
func TestScrollSurfaceResize(t *testing.T) {
	s := newTestSurface()
	s.ScrollTo(1867)
	s.SetViewportSize(375, 812)
	if w, h := s.ContainerSize(); w != 375 || h != 812 {
		t.Errorf("ContainerSize() = %vx%v", w, h)
	}
	if s.ScrollTop() != 1867 {
		t.Errorf("ScrollTop() = %v, want 1867", s.ScrollTop())
	}
	if s.MaxScrollTop() != 1867 {
		t.Errorf("MaxScrollTop() = %v, want 1867", s.MaxScrollTop())
	}
}
