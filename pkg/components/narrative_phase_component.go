package components

// NarrativePhase 投票后叙事序列的阶段
//
// 阶段按线性链推进，一次序列中不会重复进入同一阶段；
// Idle 既是起点也是重置目标
type NarrativePhase int

const (
	// PhaseIdle 初始状态，等待 Feed 投票
	PhaseIdle NarrativePhase = iota
	// PhaseVotePendingWait 已投票，展示选择结果并等待 T1
	PhaseVotePendingWait
	// PhaseWhiteout 白屏覆盖 Section 2
	PhaseWhiteout
	// PhaseThanksHold 展示感谢场景（Section 3）
	PhaseThanksHold
	// PhaseThanksFadeOut 感谢场景淡出
	PhaseThanksFadeOut
	// PhaseNextSceneFadeIn 下一场景（Section 4）淡入
	PhaseNextSceneFadeIn
	// PhaseNextSceneSteady 下一场景稳定，问卷可交互
	PhaseNextSceneSteady
)

var narrativePhaseNames = [...]string{
	"idle",
	"votePendingWait",
	"whiteout",
	"thanksHold",
	"thanksFadeOut",
	"nextSceneFadeIn",
	"nextSceneSteady",
}

// String 返回阶段名称，用于日志
func (p NarrativePhase) String() string {
	if p < 0 || int(p) >= len(narrativePhaseNames) {
		return "unknown"
	}
	return narrativePhaseNames[p]
}

// SurveyPhase Section 4 内嵌问卷的子阶段
// 仅在 PhaseNextSceneSteady 内推进
type SurveyPhase int

const (
	// SurveyHidden 问卷尚未出现
	SurveyHidden SurveyPhase = iota
	// SurveyPrompt 问题可见，等待投票
	SurveyPrompt
	// SurveyPromptFadeOut 已投票，问题淡出（等待 T6）
	SurveyPromptFadeOut
	// SurveyResult 结果视图可见
	SurveyResult
)

var surveyPhaseNames = [...]string{"hidden", "prompt", "promptFadeOut", "result"}

func (p SurveyPhase) String() string {
	if p < 0 || int(p) >= len(surveyPhaseNames) {
		return "unknown"
	}
	return surveyPhaseNames[p]
}

// VoteSceneID 可投票的叙事场景
type VoteSceneID string

const (
	// SceneFeedVote Section 2 内嵌的 Feed 卡片投票
	SceneFeedVote VoteSceneID = "feed-vote"
	// SceneSurveyVote Section 4 的问卷投票
	SceneSurveyVote VoteSceneID = "survey-vote"
)

// VoteSelection 一次叙事投票
// 同一会话内对同一场景记录后不可变
type VoteSelection struct {
	SceneID  VoteSceneID
	OptionID string
}

// LayerID 叙事场景的可视层
type LayerID int

const (
	// LayerFeedCard Section 2 的 Feed 卡片内容
	LayerFeedCard LayerID = iota
	// LayerWhiteout Section 2 之上的白色遮罩
	LayerWhiteout
	// LayerThanks Section 3 感谢场景
	LayerThanks
	// LayerNextScene Section 4 容器
	LayerNextScene
	// LayerSurveyPrompt Section 4 问卷问题视图
	LayerSurveyPrompt
	// LayerSurveyResult Section 4 结果视图
	LayerSurveyResult

	// LayerCount 层数量
	LayerCount
)

var layerNames = [...]string{"feedCard", "whiteout", "thanks", "nextScene", "surveyPrompt", "surveyResult"}

func (l LayerID) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return "unknown"
	}
	return layerNames[l]
}

// LayerTargets 每层的目标透明度
type LayerTargets [LayerCount]float64

// NarrativeSnapshot 提供给渲染层的只读快照
// 为值类型，修改快照不会影响状态机
type NarrativeSnapshot struct {
	Phase       NarrativePhase
	SurveyPhase SurveyPhase
	Layers      LayerTargets

	// FeedSelection / SurveySelection 为空字符串表示尚未投票
	FeedSelection   string
	SurveySelection string

	// FeedInteractive Feed 卡片是否接受投票
	FeedInteractive bool
	// SurveyInteractive 问卷是否接受投票
	SurveyInteractive bool
	// ResultInteractive 结果视图的按钮是否可点击
	ResultInteractive bool
}

// NarrativePhaseComponent 叙事状态机组件
// 由 NarrativePhaseSystem 独占读写
type NarrativePhaseComponent struct {
	// Phase 当前主阶段
	Phase NarrativePhase

	// Survey 问卷子阶段
	Survey SurveyPhase

	// Selections 已记录的投票，按场景索引
	Selections map[VoteSceneID]VoteSelection

	// Layers 当前各层目标透明度
	Layers LayerTargets

	// Generation 链代数，每次启动新链或重置时递增
	// 携带旧代数的定时事件一律丢弃
	Generation uint64

	// Visited 本次序列已经进入过的阶段（用于保证线性链不回退）
	Visited map[NarrativePhase]bool
}
