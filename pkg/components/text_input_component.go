package components

// TextInputComponent 单行文本输入框（纯数据）
// 用于事前预约弹层中的邮箱输入
type TextInputComponent struct {
	// Text 当前输入的文本
	Text string

	// X, Y, Width, Height 输入框区域（视口坐标）
	X, Y, Width, Height float64

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）
	CursorPosition   int     // 光标位置（字符索引）

	// 输入限制
	MaxLength   int    // 最大字符数（0 = 无限制）
	Placeholder string // 占位符文本（输入框为空时显示）

	// IsFocused 是否获得焦点（接收键盘输入）
	IsFocused bool
}

// Contains 判断点是否在输入框内
func (c *TextInputComponent) Contains(x, y float64) bool {
	return x >= c.X && x < c.X+c.Width && y >= c.Y && y < c.Y+c.Height
}

// Clear 清空文本并把光标移到开头
func (c *TextInputComponent) Clear() {
	c.Text = ""
	c.CursorPosition = 0
}
