package components

// FadeLayerComponent 可淡入淡出的渲染层
// 由 FadeLayerSystem 驱动 Current 向 Target 过渡
//
// 使用场景：叙事阶段切换时各场景的透明度过渡（默认 0.2s ease-out）
type FadeLayerComponent struct {
	// Layer 对应的叙事层
	Layer LayerID

	// Target 目标透明度（0.0 - 1.0），由场景合成写入
	Target float64

	// Current 当前显示的透明度
	Current float64

	// Duration 一次完整过渡的时长（秒），0 表示立即跳变
	Duration float64

	// from 本次过渡的起始透明度
	from float64
	// elapsed 本次过渡已经过的时间（秒）
	elapsed float64
	// lastTarget 上一帧的目标值，用于检测目标变化
	lastTarget float64
}

// Retarget 设置新目标；目标变化时从当前值重新开始过渡
func (c *FadeLayerComponent) Retarget(target float64) {
	c.Target = target
	if target != c.lastTarget {
		c.from = c.Current
		c.elapsed = 0
		c.lastTarget = target
	}
}

// Advance 推进过渡并返回本次过渡的线性进度（0..1）
func (c *FadeLayerComponent) Advance(dt float64) (from float64, progress float64) {
	if c.Duration <= 0 {
		return c.from, 1
	}
	c.elapsed += dt
	progress = c.elapsed / c.Duration
	if progress > 1 {
		progress = 1
	}
	return c.from, progress
}
