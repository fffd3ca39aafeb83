package systems

import (
	"fmt"

	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/utils"
)

// SceneGeometryCalculator 将滚动状态映射为 Scene 1 的视觉参数
//
// Compute 是纯函数：相同输入总是得到逐位相同的输出，
// 计算器不读取叙事阶段，也不保存任何帧间状态
type SceneGeometryCalculator struct {
	cfg config.SceneOneConfig
}

// NewSceneGeometryCalculator 创建计算器
// 非正数（或非有限）的 scrollDistance / holdDistance 在此处被拒绝
func NewSceneGeometryCalculator(cfg config.SceneOneConfig) (*SceneGeometryCalculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene one config: %w", err)
	}
	return &SceneGeometryCalculator{cfg: cfg}, nil
}

// Config 返回计算器使用的配置副本
func (c *SceneGeometryCalculator) Config() config.SceneOneConfig {
	return c.cfg
}

// Compute 计算当前滚动状态下的 Scene 1 几何
func (c *SceneGeometryCalculator) Compute(state components.ScrollState) components.SceneGeometry {
	cfg := c.cfg
	w, h := state.ContainerWidth, state.ContainerHeight

	progress := utils.Clamp01(state.ScrollTop / cfg.ScrollDistance)
	eased := utils.EaseInOutQuad(progress)

	// 角色：四个通道共享同一个 t 并行插值
	endHeight := cfg.CharacterEndHeightPercent
	startBottom := h * cfg.CharacterStartBottomRatio
	startLeft := w * cfg.CharacterStartLeftRatio
	endBottom := h * (1 - endHeight/100) / 2
	endLeft := w * cfg.CharacterEndLeftRatio

	character := components.CharacterPosition{
		Bottom:            utils.Lerp(startBottom, endBottom, eased),
		Left:              utils.Lerp(startLeft, endLeft, eased),
		TranslateXPercent: utils.Lerp(0, cfg.CharacterEndTranslateXPercent, eased),
		HeightPercent:     utils.Lerp(100, endHeight, eased),
	}

	// 覆盖层使用原始 scrollTop，而不是 progress：
	// 满滚动后先静止保持 holdDistance*HoldFadeStartRatio，再开始被下一场景覆盖
	fadeStart := cfg.ScrollDistance + cfg.HoldDistance*cfg.HoldFadeStartRatio
	fadeEnd := cfg.ScrollDistance + cfg.HoldDistance

	opacities := components.SceneOpacities{
		Title:           applyWindow(cfg.TitleFade, progress),
		Hint:            applyWindow(cfg.HintFade, progress),
		BubbleA:         applyWindow(cfg.BubbleAFade, progress),
		BubbleB:         applyWindow(cfg.BubbleBFade, progress),
		SceneOneFadeOut: utils.MapRange(state.ScrollTop, fadeStart, fadeEnd, 0, 1),
	}

	return components.SceneGeometry{
		Progress:      progress,
		EasedProgress: eased,
		Character:     character,
		Opacities:     opacities,
		Layout: components.SceneOneLayout{
			LogoTop:    h * cfg.LogoTopRatio,
			BubbleATop: cfg.BubbleATop,
			BubbleBTop: h * cfg.BubbleBTopRatio,
			HintBottom: h * cfg.HintBottomRatio,
		},
	}
}

func applyWindow(w config.OpacityWindow, progress float64) float64 {
	return utils.MapRange(progress, w.Start, w.End, w.From, w.To)
}
