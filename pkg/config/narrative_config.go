package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/decker502/buyornot/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 配置错误（构造时快速失败，避免运行时出现除零伪影）
var (
	// ErrInvalidScrollDistance scrollDistance 必须为有限正数
	ErrInvalidScrollDistance = errors.New("scroll distance must be a finite positive number")
	// ErrInvalidHoldDistance holdDistance 必须为有限正数
	ErrInvalidHoldDistance = errors.New("hold distance must be a finite positive number")
	// ErrInvalidWindow 透明度窗口的起点必须不大于终点，且位于 [0,1]
	ErrInvalidWindow = errors.New("opacity window must satisfy 0 <= start <= end <= 1")
	// ErrInvalidTiming 阶段时长不能为负数
	ErrInvalidTiming = errors.New("phase timing must not be negative")
	// ErrInvalidAdvanceMode thanksHold 的推进方式未知
	ErrInvalidAdvanceMode = errors.New("unknown thanksHold advance mode")
)

// OpacityWindow 一个透明度过渡窗口
// Start/End 是 Scene 1 进度（0..1）上的区间，From/To 是窗口两端的透明度
type OpacityWindow struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
}

// SceneOneConfig Scene 1（开场 logo + 角色场景）的滚动几何配置
//
// 所有比例类锚点都相对于容器宽高，容器尺寸为 0 时全部退化为 0
type SceneOneConfig struct {
	// ScrollDistance Scene 1 开场动画完整播放所需的滚动距离（像素）
	ScrollDistance float64 `yaml:"scrollDistance"`
	// HoldDistance 动画完成后场景保持静止、随后被下一场景覆盖的额外滚动距离（像素）
	HoldDistance float64 `yaml:"holdDistance"`
	// HoldFadeStartRatio 覆盖层从 holdDistance 的哪个比例开始淡入
	HoldFadeStartRatio float64 `yaml:"holdFadeStartRatio"`

	// 角色起点锚点（视口左下外侧，高度铺满视口）
	CharacterStartBottomRatio float64 `yaml:"characterStartBottomRatio"`
	CharacterStartLeftRatio   float64 `yaml:"characterStartLeftRatio"`

	// 角色终点锚点（垂直居中，水平偏移，缩小到 EndHeightPercent）
	CharacterEndHeightPercent     float64 `yaml:"characterEndHeightPercent"`
	CharacterEndLeftRatio         float64 `yaml:"characterEndLeftRatio"`
	CharacterEndTranslateXPercent float64 `yaml:"characterEndTranslateXPercent"`

	TitleFade   OpacityWindow `yaml:"titleFade"`
	HintFade    OpacityWindow `yaml:"hintFade"`
	BubbleAFade OpacityWindow `yaml:"bubbleAFade"`
	BubbleBFade OpacityWindow `yaml:"bubbleBFade"`

	// 辅助 UI 的布局锚点
	LogoTopRatio    float64 `yaml:"logoTopRatio"`
	BubbleATop      float64 `yaml:"bubbleATop"`
	BubbleBTopRatio float64 `yaml:"bubbleBTopRatio"`
	HintBottomRatio float64 `yaml:"hintBottomRatio"`
}

// ThanksHold 阶段的推进方式
const (
	// AdvanceByTimer 由定时器 T3 推进
	AdvanceByTimer = "timer"
	// AdvanceByAnimation 由场景动画的完成信号推进
	AdvanceByAnimation = "animation"
)

// PhaseTimings 叙事阶段时长（毫秒）
//
// 这些数值是手工调出来的节奏常量，没有推导依据，只作为默认值
type PhaseTimings struct {
	VotePendingWaitMs int `yaml:"votePendingWaitMs"` // T1
	WhiteoutMs        int `yaml:"whiteoutMs"`        // T2
	ThanksHoldMs      int `yaml:"thanksHoldMs"`      // T3
	ThanksFadeOutMs   int `yaml:"thanksFadeOutMs"`   // T4
	NextSceneFadeInMs int `yaml:"nextSceneFadeInMs"` // T5
	PromptFadeOutMs   int `yaml:"promptFadeOutMs"`   // T6

	// ThanksHoldAdvance "timer" 或 "animation"
	ThanksHoldAdvance string `yaml:"thanksHoldAdvance"`
}

// Durations 将毫秒配置转换为 time.Duration，顺序为 T1..T6
func (p PhaseTimings) Durations() [6]time.Duration {
	return [6]time.Duration{
		time.Duration(p.VotePendingWaitMs) * time.Millisecond,
		time.Duration(p.WhiteoutMs) * time.Millisecond,
		time.Duration(p.ThanksHoldMs) * time.Millisecond,
		time.Duration(p.ThanksFadeOutMs) * time.Millisecond,
		time.Duration(p.NextSceneFadeInMs) * time.Millisecond,
		time.Duration(p.PromptFadeOutMs) * time.Millisecond,
	}
}

// NarrativeTexts 叙事场景中的文案
type NarrativeTexts struct {
	ScrollHint       string   `yaml:"scrollHint"`
	BubbleA          string   `yaml:"bubbleA"`
	BubbleB          string   `yaml:"bubbleB"`
	FeedPrompt       string   `yaml:"feedPrompt"`
	FeedContent      string   `yaml:"feedContent"`
	FeedOptions      []Option `yaml:"feedOptions"`
	Thanks           string   `yaml:"thanks"`
	SurveyPrompt     string   `yaml:"surveyPrompt"`
	SurveyOptions    []Option `yaml:"surveyOptions"`
	ResultMessageYes string   `yaml:"resultMessageYes"`
	ResultMessageNo  string   `yaml:"resultMessageNo"`
	Shortcut         string   `yaml:"shortcut"`
}

// Option 投票选项
type Option struct {
	ID         string  `yaml:"id"`
	Label      string  `yaml:"label"`
	Percentage float64 `yaml:"percentage"`
}

// FadeConfig 渲染层透明度过渡时长（秒）
type FadeConfig struct {
	Default float64 `yaml:"default"`
	Thanks  float64 `yaml:"thanks"`
}

// NarrativeConfig 预注册叙事页面的完整配置
type NarrativeConfig struct {
	SceneOne SceneOneConfig `yaml:"sceneOne"`
	Timings  PhaseTimings   `yaml:"timings"`
	Texts    NarrativeTexts `yaml:"texts"`
	Fade     FadeConfig     `yaml:"fade"`
	// FontPath 可选的 TTF/OTF 字体路径（embedded data/ 下），为空时使用位图字体
	FontPath string `yaml:"fontPath"`
}

// DefaultSceneOneConfig 返回 Scene 1 默认几何配置
func DefaultSceneOneConfig() SceneOneConfig {
	return SceneOneConfig{
		ScrollDistance:     1200,
		HoldDistance:       667,
		HoldFadeStartRatio: 0.7,

		CharacterStartBottomRatio: -0.14,
		CharacterStartLeftRatio:   -0.2,

		CharacterEndHeightPercent:     28,
		CharacterEndLeftRatio:         0.5,
		CharacterEndTranslateXPercent: -50,

		TitleFade:   OpacityWindow{Start: 0, End: 0.35, From: 1, To: 0},
		HintFade:    OpacityWindow{Start: 0, End: 0.25, From: 1, To: 0},
		BubbleAFade: OpacityWindow{Start: 0.35, End: 0.55, From: 1, To: 0},
		BubbleBFade: OpacityWindow{Start: 0.7, End: 0.9, From: 0, To: 1},

		LogoTopRatio:    0.04,
		BubbleATop:      60,
		BubbleBTopRatio: 0.3,
		HintBottomRatio: 0.06,
	}
}

// DefaultPhaseTimings 返回默认阶段时长
func DefaultPhaseTimings() PhaseTimings {
	return PhaseTimings{
		VotePendingWaitMs: 1000,
		WhiteoutMs:        1400,
		ThanksHoldMs:      2200,
		ThanksFadeOutMs:   340,
		NextSceneFadeInMs: 400,
		PromptFadeOutMs:   300,
		ThanksHoldAdvance: AdvanceByTimer,
	}
}

// DefaultNarrativeConfig 返回完整默认配置
func DefaultNarrativeConfig() *NarrativeConfig {
	return &NarrativeConfig{
		SceneOne: DefaultSceneOneConfig(),
		Timings:  DefaultPhaseTimings(),
		Texts: NarrativeTexts{
			ScrollHint:  "궁금하면 스크롤!!",
			BubbleA:     "궁금하면 스크롤해줘!",
			BubbleB:     "살지 말지 고민되는 상품이 있어...",
			FeedPrompt:  "한 번 투표해볼래?",
			FeedContent: "두쫀쿠 너~무 먹고싶은데 집근처엔 이 가격뿐...",
			FeedOptions: []Option{
				{ID: "1", Label: "사! 가즈아!", Percentage: 80},
				{ID: "2", Label: "애매하긴 해..", Percentage: 20},
			},
			Thanks:       "의견줘서 고마워~~!",
			SurveyPrompt: "혹시 너도 살까말까 고민해본적 있어?",
			SurveyOptions: []Option{
				{ID: "yes", Label: "예"},
				{ID: "no", Label: "아니오"},
			},
			ResultMessageYes: "여기서 고민을 해결해보면 어때?",
			ResultMessageNo:  "소비 정보에도 참고되니 놀러와줘~!",
			Shortcut:         "'살까말까' 바로가기",
		},
		Fade: FadeConfig{
			Default: 0.2,
			Thanks:  0.34,
		},
	}
}

// LoadNarrativeConfig 加载叙事配置
// 嵌入资源中存在该路径时优先读取嵌入资源，否则读取文件系统；路径为空时返回默认配置
func LoadNarrativeConfig(path string) (*NarrativeConfig, error) {
	if path == "" {
		return DefaultNarrativeConfig(), nil
	}

	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read narrative config %s: %w", path, err)
	}
	return ParseNarrativeConfig(data)
}

// ParseNarrativeConfig 解析 YAML 配置
// 未出现在 YAML 中的字段保留默认值，解析后执行 Validate
func ParseNarrativeConfig(data []byte) (*NarrativeConfig, error) {
	cfg := DefaultNarrativeConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse narrative config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验完整配置
func (c *NarrativeConfig) Validate() error {
	if err := c.SceneOne.Validate(); err != nil {
		return fmt.Errorf("sceneOne: %w", err)
	}
	if err := c.Timings.Validate(); err != nil {
		return fmt.Errorf("timings: %w", err)
	}
	return nil
}

// Validate 校验 Scene 1 几何配置
func (c SceneOneConfig) Validate() error {
	if !isFinitePositive(c.ScrollDistance) {
		return fmt.Errorf("%w: got %v", ErrInvalidScrollDistance, c.ScrollDistance)
	}
	if !isFinitePositive(c.HoldDistance) {
		return fmt.Errorf("%w: got %v", ErrInvalidHoldDistance, c.HoldDistance)
	}
	if c.HoldFadeStartRatio < 0 || c.HoldFadeStartRatio > 1 {
		return fmt.Errorf("%w: holdFadeStartRatio %v", ErrInvalidWindow, c.HoldFadeStartRatio)
	}

	// 按固定顺序校验，多个窗口非法时总是报告第一个
	windows := []struct {
		name   string
		window OpacityWindow
	}{
		{"titleFade", c.TitleFade},
		{"hintFade", c.HintFade},
		{"bubbleAFade", c.BubbleAFade},
		{"bubbleBFade", c.BubbleBFade},
	}
	for _, nw := range windows {
		w := nw.window
		if w.Start < 0 || w.End > 1 || w.Start > w.End {
			return fmt.Errorf("%w: %s [%v, %v]", ErrInvalidWindow, nw.name, w.Start, w.End)
		}
	}
	return nil
}

// Validate 校验阶段时长
func (p PhaseTimings) Validate() error {
	for i, d := range p.Durations() {
		if d < 0 {
			return fmt.Errorf("%w: T%d = %v", ErrInvalidTiming, i+1, d)
		}
	}
	switch p.ThanksHoldAdvance {
	case AdvanceByTimer, AdvanceByAnimation:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAdvanceMode, p.ThanksHoldAdvance)
	}
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
