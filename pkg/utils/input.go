// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSample 一帧的指针采样
// 统一鼠标与触摸输入；测试中直接构造
type PointerSample struct {
	// Pressed 鼠标左键按下或有活动触摸
	Pressed bool
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// TouchID 触摸ID（鼠标为 -1）
	TouchID ebiten.TouchID
	// IsTouch 是否为触摸输入
	IsTouch bool
}

// SamplePointer 读取当前帧的指针状态
// tracked >= 0 时优先跟踪该触摸点，避免多指切换时位置跳变
func SamplePointer(tracked ebiten.TouchID) PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		id := touchIDs[0]
		for _, t := range touchIDs {
			if t == tracked {
				id = t
				break
			}
		}
		x, y := ebiten.TouchPosition(id)
		return PointerSample{Pressed: true, X: x, Y: y, TouchID: id, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
		TouchID: -1,
	}
}

// WheelDeltaY 返回本帧鼠标滚轮的纵向刻度（向下滚动为正）
func WheelDeltaY() float64 {
	_, dy := ebiten.Wheel()
	return -dy
}

// ============================================================================
// 拖拽状态管理器 - 用于滚动容器的拖拽滚动与点击识别
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// PrevX, PrevY 上一帧位置，用于计算帧间位移
	PrevX, PrevY int
	// TouchID 当前跟踪的触摸ID（-1表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入（区分触摸和鼠标）
	IsTouchInput bool
}

// DragManager 拖拽管理器
// 每个滚动容器拥有自己的实例
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	dm := &DragManager{}
	dm.Reset()
	return dm
}

// Update 从 Ebitengine 采样并更新拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	dm.Step(SamplePointer(dm.info.TouchID))
}

// Step 用一次采样推进拖拽状态机
func (dm *DragManager) Step(s PointerSample) {
	switch dm.info.State {
	case DragStateNone:
		dm.checkDragStart(s)

	case DragStateStarted, DragStateDragging:
		if !s.Pressed {
			// 释放时保留最后位置
			dm.info.PrevX, dm.info.PrevY = dm.info.CurrentX, dm.info.CurrentY
			dm.info.State = DragStateEnded
			return
		}
		dm.info.State = DragStateDragging
		dm.info.PrevX, dm.info.PrevY = dm.info.CurrentX, dm.info.CurrentY
		dm.info.CurrentX, dm.info.CurrentY = s.X, s.Y

	case DragStateEnded:
		// 结束状态只持续一帧
		dm.Reset()
		dm.checkDragStart(s)
	}
}

// checkDragStart 检测拖拽开始
func (dm *DragManager) checkDragStart(s PointerSample) {
	if !s.Pressed {
		return
	}
	dm.info = DragInfo{
		State:        DragStateStarted,
		StartX:       s.X,
		StartY:       s.Y,
		CurrentX:     s.X,
		CurrentY:     s.Y,
		PrevX:        s.X,
		PrevY:        s.Y,
		TouchID:      s.TouchID,
		IsTouchInput: s.IsTouch,
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// IsDragging 是否正在拖拽
func (dm *DragManager) IsDragging() bool {
	return dm.info.State == DragStateDragging
}

// JustStarted 是否刚开始拖拽（本帧）
func (dm *DragManager) JustStarted() bool {
	return dm.info.State == DragStateStarted
}

// JustEnded 是否刚结束拖拽（本帧）
func (dm *DragManager) JustEnded() bool {
	return dm.info.State == DragStateEnded
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}

// FrameDelta 本帧相对上一帧的位移
func (dm *DragManager) FrameDelta() (dx, dy int) {
	return dm.info.CurrentX - dm.info.PrevX, dm.info.CurrentY - dm.info.PrevY
}

// IsTap 本帧是否结束了一次位移不超过 slop 的点击
func (dm *DragManager) IsTap(slop float64) bool {
	if !dm.JustEnded() {
		return false
	}
	dx, dy := dm.GetDragDistance()
	return float64(dx*dx+dy*dy) <= slop*slop
}

// IsTouchDrag 是否为触摸拖拽
func (dm *DragManager) IsTouchDrag() bool {
	return dm.info.IsTouchInput
}
