package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（FadeLayer 的透明度过渡使用此曲线）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutQuad 二次方缓入缓出
// 特点：开始慢，中间快，结束慢（Scene 1 角色位移使用此曲线）
// 公式：
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = -1 + (4-2t)t  （等价于 1 - 2(1-t)²）
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b；不对 t 做裁剪，t 超出 [0,1] 时外推
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
// NaN 视为 0，保证函数总是有定义
func Clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// MapRange 将 value 从 [inMin, inMax] 映射到 [outMin, outMax]，结果被限制在输出区间内
//
// 公式：Lerp(outMin, outMax, Clamp01((value-inMin)/(inMax-inMin)))
//
// 退化区间（inMin == inMax）视为已到达 inMax，直接返回 outMax，避免除零
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMax
	}
	return Lerp(outMin, outMax, Clamp01((value-inMin)/(inMax-inMin)))
}
