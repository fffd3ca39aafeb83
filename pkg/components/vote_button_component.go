package components

// VoteButtonComponent Feed 投票按钮（纯数据）
type VoteButtonComponent struct {
	// OptionID 选项ID（"yes" / "no"）
	OptionID string
	// Label 按钮文字
	Label string
	// X, Y, Width, Height 按钮区域（视口坐标）
	X, Y, Width, Height float64
	// Percentage 投票后显示的占比（0-100）
	Percentage int
	// Selected 是否为本设备选择的选项
	Selected bool
}

// Contains 判断点是否在按钮内
func (b *VoteButtonComponent) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
