package systems

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/game"
	"github.com/decker502/buyornot/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 叙事页面视觉常量
var (
	sceneOneBackground = color.RGBA{R: 255, G: 236, B: 214, A: 255}
	sectionBackground  = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	whiteoutColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	characterColor     = color.RGBA{R: 255, G: 153, B: 102, A: 255}
	bubbleColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cardColor          = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cardBorderColor    = color.RGBA{R: 225, G: 225, B: 230, A: 255}
	buttonColor        = color.RGBA{R: 242, G: 243, B: 247, A: 255}
	selectedColor      = color.RGBA{R: 255, G: 112, B: 67, A: 255}
	primaryColor       = color.RGBA{R: 40, G: 40, B: 50, A: 255}
	textColor          = color.RGBA{R: 30, G: 30, B: 35, A: 255}
	mutedTextColor     = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	inverseTextColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// 字号
const (
	titleFontSize  = 36.0
	bodyFontSize   = 20.0
	buttonFontSize = 18.0
)

// SceneRenderSystem 把合成好的 Frame 绘制到屏幕
// 只读取 Frame 与各层当前透明度，不修改任何状态
type SceneRenderSystem struct {
	texts     config.NarrativeTexts
	titleFace text.Face
	bodyFace  text.Face
	btnFace   text.Face
}

// NewSceneRenderSystem 创建渲染系统
// fontPath 为空或加载失败时使用内置位图字体
func NewSceneRenderSystem(rm *game.ResourceManager, fontPath string, texts config.NarrativeTexts) *SceneRenderSystem {
	s := &SceneRenderSystem{
		texts:     texts,
		titleFace: rm.Face(fontPath, titleFontSize),
		bodyFace:  rm.Face(fontPath, bodyFontSize),
		btnFace:   rm.Face(fontPath, buttonFontSize),
	}
	if fontPath == "" || s.bodyFace == rm.FallbackFace() {
		log.Printf("[SceneRenderSystem] Using fallback bitmap font")
	}
	return s
}

// Draw 绘制一帧
//
// 参数：
//   - screen: 目标图像
//   - f: ComposeFrame 的结果
//   - fade: 各层当前透明度（FadeLayerSystem 的过渡值）
func (s *SceneRenderSystem) Draw(screen *ebiten.Image, f Frame, fade components.LayerTargets) {
	bounds := screen.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	s.drawSceneOne(screen, f.Geometry, w, h)

	if f.Overlay <= 0 {
		return
	}
	alpha := func(l components.LayerID) float64 { return f.Overlay * fade[l] }

	// Section 2 之后的场景共用一个底色，随覆盖度淡入
	fillRect(screen, 0, 0, w, h, sectionBackground, f.Overlay)

	if a := alpha(components.LayerFeedCard); a > 0 {
		s.drawFeedCard(screen, f, w, h, a)
	}
	if a := alpha(components.LayerWhiteout); a > 0 {
		fillRect(screen, 0, 0, w, h, whiteoutColor, a)
	}
	if a := alpha(components.LayerThanks); a > 0 {
		s.drawCentered(screen, s.texts.Thanks, s.titleFace, w/2, h*0.45, w-2*config.CardMarginX, textColor, a)
	}
	if a := alpha(components.LayerNextScene); a > 0 {
		fillRect(screen, 0, 0, w, h, sectionBackground, a)
	}
	if a := alpha(components.LayerSurveyPrompt); a > 0 {
		s.drawSurveyPrompt(screen, f, w, h, a)
	}
	if a := alpha(components.LayerSurveyResult); a > 0 {
		s.drawSurveyResult(screen, f, w, h, a)
	}
}

// drawSceneOne 绘制 Scene 1：标题、气泡、提示与角色
func (s *SceneRenderSystem) drawSceneOne(screen *ebiten.Image, g components.SceneGeometry, w, h float64) {
	fillRect(screen, 0, 0, w, h, sceneOneBackground, 1)

	o := g.Opacities
	if o.Title > 0 {
		s.drawCentered(screen, "BUY OR NOT", s.titleFace, w/2, g.Layout.LogoTop, w, primaryColor, o.Title)
	}
	if o.BubbleA > 0 {
		s.drawBubble(screen, s.texts.BubbleA, w/2, g.Layout.BubbleATop+titleFontSize*2, w*0.7, o.BubbleA)
	}
	if o.BubbleB > 0 {
		s.drawBubble(screen, s.texts.BubbleB, w/2, g.Layout.BubbleBTop, w*0.8, o.BubbleB)
	}

	// 角色：高度按视口百分比，bottom/left 为相对视口底边与左边的偏移
	c := g.Character
	charH := h * c.HeightPercent / 100
	charW := charH * 0.55
	x := c.Left + charW*c.TranslateXPercent/100
	y := h - c.Bottom - charH
	fillRect(screen, x, y+charW*0.9, charW, charH-charW*0.9, characterColor, 1)
	vector.DrawFilledCircle(screen, float32(x+charW/2), float32(y+charW*0.5), float32(charW*0.5), characterColor, true)

	if o.Hint > 0 {
		s.drawCentered(screen, s.texts.ScrollHint, s.bodyFace, w/2, h-g.Layout.HintBottom-bodyFontSize, w, mutedTextColor, o.Hint)
	}
}

func (s *SceneRenderSystem) drawBubble(screen *ebiten.Image, msg string, cx, top, maxW, a float64) {
	lines := utils.WrapText(msg, s.bodyFace, maxW-32)
	boxH := float64(len(lines))*(bodyFontSize*1.4) + 24
	fillRect(screen, cx-maxW/2, top, maxW, boxH, bubbleColor, a)
	for i, line := range lines {
		s.drawCentered(screen, line, s.bodyFace, cx, top+12+float64(i)*bodyFontSize*1.4, maxW, textColor, a)
	}
}

// drawFeedCard Section 2：Feed 卡片与投票选项
func (s *SceneRenderSystem) drawFeedCard(screen *ebiten.Image, f Frame, w, h, a float64) {
	s.drawCentered(screen, s.texts.FeedPrompt, s.titleFace, w/2, h*0.08, w-2*config.CardMarginX, textColor, a)

	cardTop := h * 0.22
	cardBottom := h * 0.8
	if len(f.FeedButtons) > 0 {
		cardBottom = f.FeedButtons[len(f.FeedButtons)-1].Y + f.FeedButtons[len(f.FeedButtons)-1].H + 16
	}
	fillRect(screen, config.CardMarginX-8, cardTop, w-2*config.CardMarginX+16, cardBottom-cardTop, cardColor, a)
	strokeRect(screen, config.CardMarginX-8, cardTop, w-2*config.CardMarginX+16, cardBottom-cardTop, cardBorderColor, a)

	for i, line := range utils.WrapText(s.texts.FeedContent, s.bodyFace, w-4*config.CardMarginX) {
		s.drawText(screen, line, s.bodyFace, config.CardMarginX+8, cardTop+20+float64(i)*bodyFontSize*1.5, textColor, a)
	}

	selected := f.Snapshot.FeedSelection
	for i, opt := range s.texts.FeedOptions {
		if i >= len(f.FeedButtons) {
			break
		}
		r := f.FeedButtons[i]
		fillRect(screen, r.X, r.Y, r.W, r.H, buttonColor, a)
		if selected != "" {
			// 投票后显示各选项占比
			barColor := cardBorderColor
			if opt.ID == selected {
				barColor = selectedColor
			}
			fillRect(screen, r.X, r.Y, r.W*opt.Percentage/100, r.H, barColor, a)
			s.drawText(screen, fmt.Sprintf("%.0f%%", opt.Percentage), s.btnFace, r.X+r.W-56, r.Y+(r.H-buttonFontSize)/2, textColor, a)
		}
		s.drawText(screen, opt.Label, s.btnFace, r.X+16, r.Y+(r.H-buttonFontSize)/2, textColor, a)
	}
}

// drawSurveyPrompt Section 4：问卷问题与选项
func (s *SceneRenderSystem) drawSurveyPrompt(screen *ebiten.Image, f Frame, w, h, a float64) {
	for i, line := range utils.WrapText(s.texts.SurveyPrompt, s.titleFace, w-2*config.CardMarginX) {
		s.drawCentered(screen, line, s.titleFace, w/2, h*0.3+float64(i)*titleFontSize*1.3, w, textColor, a)
	}
	for i, opt := range s.texts.SurveyOptions {
		if i >= len(f.SurveyButtons) {
			break
		}
		r := f.SurveyButtons[i]
		bg := buttonColor
		fg := textColor
		if opt.ID == f.Snapshot.SurveySelection {
			bg, fg = selectedColor, inverseTextColor
		}
		fillRect(screen, r.X, r.Y, r.W, r.H, bg, a)
		s.drawCentered(screen, opt.Label, s.btnFace, r.X+r.W/2, r.Y+(r.H-buttonFontSize)/2, r.W, fg, a)
	}
}

// drawSurveyResult Section 4：结果文案与바로가기 按钮
func (s *SceneRenderSystem) drawSurveyResult(screen *ebiten.Image, f Frame, w, h, a float64) {
	for i, line := range utils.WrapText(f.ResultMessage, s.titleFace, w-2*config.CardMarginX) {
		s.drawCentered(screen, line, s.titleFace, w/2, h*0.35+float64(i)*titleFontSize*1.3, w, textColor, a)
	}
	r := f.ShortcutButton
	fillRect(screen, r.X, r.Y, r.W, r.H, primaryColor, a)
	s.drawCentered(screen, s.texts.Shortcut, s.btnFace, r.X+r.W/2, r.Y+(r.H-buttonFontSize)/2, r.W, inverseTextColor, a)
}

func (s *SceneRenderSystem) drawText(screen *ebiten.Image, msg string, face text.Face, x, y float64, clr color.RGBA, a float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(a))
	text.Draw(screen, msg, face, op)
}

// drawCentered 以 cx 为中心绘制单行文本，超宽时自动换行
func (s *SceneRenderSystem) drawCentered(screen *ebiten.Image, msg string, face text.Face, cx, y, maxW float64, clr color.RGBA, a float64) {
	for i, line := range utils.WrapText(msg, face, maxW) {
		lw, lh := text.Measure(line, face, 0)
		s.drawText(screen, line, face, cx-lw/2, y+float64(i)*lh*1.2, clr, a)
	}
}

// withAlpha 按透明度缩放预乘颜色
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = utils.Clamp01(a)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, c color.RGBA, a float64) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), withAlpha(c, a), true)
}

func strokeRect(screen *ebiten.Image, x, y, w, h float64, c color.RGBA, a float64) {
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, withAlpha(c, a), true)
}
