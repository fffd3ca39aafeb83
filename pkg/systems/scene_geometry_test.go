package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
)

func newTestCalculator(t *testing.T) *SceneGeometryCalculator {
	t.Helper()
	cfg := config.DefaultSceneOneConfig()
	cfg.ScrollDistance = 1200
	cfg.HoldDistance = 667
	calc, err := NewSceneGeometryCalculator(cfg)
	if err != nil {
		t.Fatalf("NewSceneGeometryCalculator() error: %v", err)
	}
	return calc
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestSceneGeometryRejectsInvalidConfig 非法距离构造时失败
func TestSceneGeometryRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSceneOneConfig()
	cfg.ScrollDistance = 0
	if _, err := NewSceneGeometryCalculator(cfg); !errors.Is(err, config.ErrInvalidScrollDistance) {
		t.Errorf("got %v, want ErrInvalidScrollDistance", err)
	}

	cfg = config.DefaultSceneOneConfig()
	cfg.HoldDistance = -1
	if _, err := NewSceneGeometryCalculator(cfg); !errors.Is(err, config.ErrInvalidHoldDistance) {
		t.Errorf("got %v, want ErrInvalidHoldDistance", err)
	}
}

// TestSceneGeometryProgressExamples scrollDistance=1200, holdDistance=667
func TestSceneGeometryProgressExamples(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name      string
		scrollTop float64
		progress  float64
		eased     float64
	}{
		{"起点", 0, 0, 0},
		{"一半", 600, 0.5, 0.5},
		{"完成", 1200, 1, 1},
		{"超出范围被裁剪", 2000, 1, 1},
		{"负数被裁剪", -300, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := calc.Compute(components.ScrollState{ScrollTop: tt.scrollTop, ContainerWidth: 540, ContainerHeight: 960})
			if !almostEqual(g.Progress, tt.progress) {
				t.Errorf("Progress = %v, want %v", g.Progress, tt.progress)
			}
			if !almostEqual(g.EasedProgress, tt.eased) {
				t.Errorf("EasedProgress = %v, want %v", g.EasedProgress, tt.eased)
			}
		})
	}
}

// TestSceneGeometryProgressAlwaysClamped 任意 scrollTop 下 progress 都在 [0,1]
func TestSceneGeometryProgressAlwaysClamped(t *testing.T) {
	calc := newTestCalculator(t)
	inputs := []float64{
		math.Inf(-1), -1e12, -1, -0.0001, 0, 1, 599.5, 1199.999, 1200, 1200.001, 1e12,
		math.Inf(1), math.NaN(), math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64,
	}
	for _, v := range inputs {
		g := calc.Compute(components.ScrollState{ScrollTop: v, ContainerWidth: 540, ContainerHeight: 960})
		if !(g.Progress >= 0 && g.Progress <= 1) {
			t.Errorf("scrollTop=%v: Progress = %v 超出 [0,1]", v, g.Progress)
		}
		if !(g.EasedProgress >= 0 && g.EasedProgress <= 1) {
			t.Errorf("scrollTop=%v: EasedProgress = %v 超出 [0,1]", v, g.EasedProgress)
		}
	}
}

// TestSceneGeometryDeterministic 相同输入逐位相同
func TestSceneGeometryDeterministic(t *testing.T) {
	calc := newTestCalculator(t)
	for _, top := range []float64{0, 123.456, 600, 1333.3, 1800, 5000} {
		state := components.ScrollState{ScrollTop: top, ContainerWidth: 375, ContainerHeight: 812}
		a := calc.Compute(state)
		b := calc.Compute(state)
		if a != b {
			t.Errorf("scrollTop=%v: 两次计算结果不同\n%+v\n%+v", top, a, b)
		}
	}
}

// TestSceneGeometryCharacterAnchors 角色从起点锚点插值到终点锚点
func TestSceneGeometryCharacterAnchors(t *testing.T) {
	calc := newTestCalculator(t)
	w, h := 500.0, 1000.0

	start := calc.Compute(components.ScrollState{ScrollTop: 0, ContainerWidth: w, ContainerHeight: h}).Character
	if !almostEqual(start.Bottom, -140) || !almostEqual(start.Left, -100) {
		t.Errorf("起点 bottom/left = %v/%v, want -140/-100", start.Bottom, start.Left)
	}
	if start.TranslateXPercent != 0 || start.HeightPercent != 100 {
		t.Errorf("起点 translateX/height = %v/%v, want 0/100", start.TranslateXPercent, start.HeightPercent)
	}

	end := calc.Compute(components.ScrollState{ScrollTop: 1200, ContainerWidth: w, ContainerHeight: h}).Character
	if !almostEqual(end.Bottom, 360) { // 1000 * (1 - 0.28) / 2
		t.Errorf("终点 bottom = %v, want 360", end.Bottom)
	}
	if !almostEqual(end.Left, 250) || !almostEqual(end.TranslateXPercent, -50) || !almostEqual(end.HeightPercent, 28) {
		t.Errorf("终点 = %+v", end)
	}

	// 中点：四个通道共享同一个 t=0.5
	mid := calc.Compute(components.ScrollState{ScrollTop: 600, ContainerWidth: w, ContainerHeight: h}).Character
	if !almostEqual(mid.Bottom, (-140+360)/2.0) || !almostEqual(mid.Left, (-100+250)/2.0) ||
		!almostEqual(mid.TranslateXPercent, -25) || !almostEqual(mid.HeightPercent, 64) {
		t.Errorf("中点 = %+v", mid)
	}
}

// TestSceneGeometryStaggeredOpacities 辅助 UI 透明度按各自窗口错开
func TestSceneGeometryStaggeredOpacities(t *testing.T) {
	calc := newTestCalculator(t)
	at := func(progress float64) components.SceneOpacities {
		return calc.Compute(components.ScrollState{ScrollTop: progress * 1200, ContainerWidth: 540, ContainerHeight: 960}).Opacities
	}

	o := at(0)
	if o.Title != 1 || o.Hint != 1 || o.BubbleA != 1 || o.BubbleB != 0 {
		t.Errorf("progress=0: %+v", o)
	}

	o = at(0.25)
	if o.Hint != 0 {
		t.Errorf("progress=0.25: hint 应完全淡出, got %v", o.Hint)
	}
	if o.Title <= 0 || o.Title >= 1 {
		t.Errorf("progress=0.25: title 应处于淡出中, got %v", o.Title)
	}

	o = at(0.35)
	if o.Title != 0 || o.BubbleA != 1 {
		t.Errorf("progress=0.35: title=%v bubbleA=%v, want 0/1", o.Title, o.BubbleA)
	}

	o = at(0.45)
	if !almostEqual(o.BubbleA, 0.5) {
		t.Errorf("progress=0.45: bubbleA = %v, want 0.5", o.BubbleA)
	}

	o = at(0.7)
	if o.BubbleA != 0 || o.BubbleB != 0 {
		t.Errorf("progress=0.7: bubbleA=%v bubbleB=%v, want 0/0", o.BubbleA, o.BubbleB)
	}

	o = at(0.8)
	if !almostEqual(o.BubbleB, 0.5) {
		t.Errorf("progress=0.8: bubbleB = %v, want 0.5", o.BubbleB)
	}

	o = at(1)
	if o.BubbleB != 1 {
		t.Errorf("progress=1: bubbleB = %v, want 1", o.BubbleB)
	}
}

// TestSceneGeometryHoldFadeOut 覆盖层使用原始 scrollTop，满滚动后先保持再淡出
func TestSceneGeometryHoldFadeOut(t *testing.T) {
	calc := newTestCalculator(t)
	fadeStart := 1200 + 667*0.7
	fadeEnd := 1200 + 667.0

	tests := []struct {
		name      string
		scrollTop float64
		want      float64
	}{
		{"动画完成时", 1200, 0},
		{"保持期内", fadeStart - 1, 0},
		{"开始淡出", fadeStart, 0},
		{"淡出一半", (fadeStart + fadeEnd) / 2, 0.5},
		{"完全覆盖", fadeEnd, 1},
		{"之后", fadeEnd + 500, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := calc.Compute(components.ScrollState{ScrollTop: tt.scrollTop, ContainerWidth: 540, ContainerHeight: 960})
			if !almostEqual(g.Opacities.SceneOneFadeOut, tt.want) {
				t.Errorf("SceneOneFadeOut = %v, want %v", g.Opacities.SceneOneFadeOut, tt.want)
			}
			if g.Progress != 1 {
				t.Errorf("Progress = %v, want 1", g.Progress)
			}
		})
	}
}

// TestSceneGeometryZeroContainer 未测量的容器：比例锚点退化为 0 且不 panic
func TestSceneGeometryZeroContainer(t *testing.T) {
	calc := newTestCalculator(t)
	for _, top := range []float64{0, 600, 1200, 3000} {
		g := calc.Compute(components.ScrollState{ScrollTop: top})
		if g.Character.Bottom != 0 || g.Character.Left != 0 {
			t.Errorf("scrollTop=%v: 零尺寸容器角色位置应为 0, got %+v", top, g.Character)
		}
		if g.Layout.LogoTop != 0 || g.Layout.BubbleBTop != 0 || g.Layout.HintBottom != 0 {
			t.Errorf("scrollTop=%v: 零尺寸容器布局锚点应为 0, got %+v", top, g.Layout)
		}
	}
}
