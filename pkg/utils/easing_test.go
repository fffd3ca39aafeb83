package utils

import (
	"math"
	"testing"
)

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3 = 0.875
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	t.Run("整体快于线性", func(t *testing.T) {
		for p := 0.0; p <= 1.0; p += 0.1 {
			if EaseOutCubic(p) < EaseLinear(p)-0.001 {
				t.Errorf("EaseOutCubic(%v) 不应该落后于线性值", p)
			}
		}
	})
}

// TestEaseInOutQuad 测试二次方缓入缓出函数
func TestEaseInOutQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"四分之一", 0.25, 0.125}, // 2 * 0.25^2
		{"中点", 0.5, 0.5},
		{"四分之三", 0.75, 0.875}, // -1 + (4-1.5)*0.75
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutQuad(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("EaseInOutQuad(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	t.Run("两种写法等价", func(t *testing.T) {
		for p := 0.5; p <= 1.0; p += 0.05 {
			alt := 1 - 2*(1-p)*(1-p)
			if math.Abs(EaseInOutQuad(p)-alt) > 1e-9 {
				t.Errorf("EaseInOutQuad(%v) = %v, 1-2(1-t)² = %v", p, EaseInOutQuad(p), alt)
			}
		}
	})

	t.Run("单调递增", func(t *testing.T) {
		prev := EaseInOutQuad(0)
		for p := 0.01; p <= 1.0; p += 0.01 {
			cur := EaseInOutQuad(p)
			if cur < prev {
				t.Fatalf("EaseInOutQuad 在 %v 处递减: %v < %v", p, cur, prev)
			}
			prev = cur
		}
	})
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
		{"不裁剪_超出", 0.0, 100.0, 1.5, 150.0},
		{"不裁剪_负值", 0.0, 100.0, -0.5, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestClamp01 测试裁剪函数
func TestClamp01(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"负数", -3, 0},
		{"零", 0, 0},
		{"中间", 0.42, 0.42},
		{"一", 1, 1},
		{"超出", 7, 1},
		{"负无穷", math.Inf(-1), 0},
		{"正无穷", math.Inf(1), 1},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.input); got != tt.expected {
				t.Errorf("Clamp01(%v) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestMapRange 测试区间映射
func TestMapRange(t *testing.T) {
	tests := []struct {
		name                    string
		value, inMin, inMax     float64
		outMin, outMax, expects float64
	}{
		{"淡出_起点", 0, 0, 0.35, 1, 0, 1},
		{"淡出_中点", 0.175, 0, 0.35, 1, 0, 0.5},
		{"淡出_之后", 0.9, 0, 0.35, 1, 0, 0},
		{"淡入_之前", 0.1, 0.7, 0.9, 0, 1, 0},
		{"淡入_中点", 0.8, 0.7, 0.9, 0, 1, 0.5},
		{"淡入_之后", 2, 0.7, 0.9, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRange(tt.value, tt.inMin, tt.inMax, tt.outMin, tt.outMax)
			if math.Abs(got-tt.expects) > 1e-9 {
				t.Errorf("MapRange(%v, %v, %v, %v, %v) = %v, 期望 %v",
					tt.value, tt.inMin, tt.inMax, tt.outMin, tt.outMax, got, tt.expects)
			}
		})
	}
}

// TestMapRangeDegenerate 退化区间总是返回 outMax
func TestMapRangeDegenerate(t *testing.T) {
	values := []float64{-1e9, -1, 0, 0.5, 3, 1e9, math.Inf(1), math.Inf(-1)}
	bounds := []struct{ lo, hi float64 }{{0, 1}, {1, 0}, {-20, 35}, {7, 7}}

	for _, v := range values {
		for _, b := range bounds {
			if got := MapRange(v, 4, 4, b.lo, b.hi); got != b.hi {
				t.Errorf("MapRange(%v, 4, 4, %v, %v) = %v, 期望 %v", v, b.lo, b.hi, got, b.hi)
			}
		}
	}
}
