package systems

import (
	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
)

// HitKind 可点击区域的类型
type HitKind int

const (
	// HitVote 叙事投票选项
	HitVote HitKind = iota
	// HitShortcut 结果视图的"바로가기"按钮
	HitShortcut
)

// HitRegion 当前帧可点击的区域
type HitRegion struct {
	Rect     config.Rect
	Kind     HitKind
	Scene    components.VoteSceneID
	OptionID string
}

// Frame 一帧的合成结果
// 连续（滚动）与离散（阶段）两个来源只在这里相遇
type Frame struct {
	Geometry components.SceneGeometry
	Snapshot components.NarrativeSnapshot

	// Overlay Section 2 之后的场景整体覆盖度（来自滚动）
	Overlay float64
	// Layers 各层最终目标透明度 = Overlay × 阶段目标
	Layers components.LayerTargets

	// 按钮布局（无论是否可点击都会给出，供绘制使用）
	FeedButtons    []config.Rect
	SurveyButtons  []config.Rect
	ShortcutButton config.Rect

	// ResultMessage 根据问卷选择得到的结果文案
	ResultMessage string

	// Hits 本帧启用的点击区域
	Hits []HitRegion
}

// ComposeFrame 合成一帧
//
// 参数：
//   - geom: 滚动几何（SceneGeometryCalculator.Compute 的结果）
//   - snap: 叙事状态快照
//   - texts: 文案与选项
//   - width, height: 视口尺寸
func ComposeFrame(geom components.SceneGeometry, snap components.NarrativeSnapshot, texts config.NarrativeTexts, width, height float64) Frame {
	f := Frame{
		Geometry: geom,
		Snapshot: snap,
		Overlay:  geom.Opacities.SceneOneFadeOut,
	}
	for i := range snap.Layers {
		f.Layers[i] = f.Overlay * snap.Layers[i]
	}

	f.FeedButtons = config.StackButtons(width, height, len(texts.FeedOptions), config.FeedOptionHeight, height*0.25)
	f.SurveyButtons = config.StackButtons(width, height, len(texts.SurveyOptions), config.VoteButtonHeight, 80)
	if btns := config.StackButtons(width, height, 1, config.ShortcutButtonHeight, 80); len(btns) == 1 {
		f.ShortcutButton = btns[0]
	}

	f.ResultMessage = texts.ResultMessageNo
	if snap.SurveySelection == "yes" {
		f.ResultMessage = texts.ResultMessageYes
	}

	// 只有下一场景完全覆盖 Scene 1 后才接受点击
	if f.Overlay < 1 {
		return f
	}
	if snap.FeedInteractive && snap.Layers[components.LayerFeedCard] > 0 {
		for i, opt := range texts.FeedOptions {
			f.Hits = append(f.Hits, HitRegion{Rect: f.FeedButtons[i], Kind: HitVote, Scene: components.SceneFeedVote, OptionID: opt.ID})
		}
	}
	if snap.SurveyInteractive && snap.Layers[components.LayerSurveyPrompt] > 0 {
		for i, opt := range texts.SurveyOptions {
			f.Hits = append(f.Hits, HitRegion{Rect: f.SurveyButtons[i], Kind: HitVote, Scene: components.SceneSurveyVote, OptionID: opt.ID})
		}
	}
	if snap.ResultInteractive && snap.Layers[components.LayerSurveyResult] > 0 {
		f.Hits = append(f.Hits, HitRegion{Rect: f.ShortcutButton, Kind: HitShortcut})
	}
	return f
}

// HitTest 返回包含点 (x, y) 的第一个启用区域
func (f Frame) HitTest(x, y float64) (HitRegion, bool) {
	for _, h := range f.Hits {
		if h.Rect.Contains(x, y) {
			return h, true
		}
	}
	return HitRegion{}, false
}
