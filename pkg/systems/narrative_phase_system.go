package systems

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/ecs"
)

// EventKind 叙事状态机的事件类型
type EventKind int

const (
	// EventVote 用户点击了某个叙事投票选项
	EventVote EventKind = iota
	// EventTimer 定时器到期
	EventTimer
	// EventAnimationComplete 附加在场景上的动画报告播放完成
	EventAnimationComplete
)

// Event 状态机事件
// 定时器与外部完成信号都通过同一个 Dispatch 入口进入状态机
type Event struct {
	Kind EventKind

	// EventVote
	Scene    components.VoteSceneID
	OptionID string

	// EventTimer：目标主阶段或目标问卷子阶段（Survey 为 true 时）
	Target       components.NarrativePhase
	Survey       bool
	SurveyTarget components.SurveyPhase
	Generation   uint64
}

// NarrativePhaseSystem 投票后叙事序列的阶段状态机
//
// 主链：idle → votePendingWait → whiteout → thanksHold → thanksFadeOut
// → nextSceneFadeIn → nextSceneSteady；问卷子链只在 nextSceneSteady 内推进。
//
// 状态机只读写自己的组件，从不读取滚动状态；
// 所有延时转场都登记在当前链的 TimerGroup 中，启动新链或重置时整体取消。
type NarrativePhaseSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *TimerScheduler
	timings       config.PhaseTimings
	durations     [6]time.Duration

	// phaseEntity 叙事状态实体ID
	phaseEntity ecs.EntityID

	// chain 当前链的定时器组
	chain *TimerGroup

	// 外部回调（可为 nil）
	onPhaseChange  func(from, to components.NarrativePhase)
	onSurveyChange func(from, to components.SurveyPhase)
	onVoteRecorded func(sel components.VoteSelection)
}

// NewNarrativePhaseSystem 创建叙事状态机，初始阶段为 idle
//
// 参数：
//   - em: 页面实例拥有的实体管理器
//   - scheduler: 页面实例拥有的定时器调度器
//   - timings: 阶段时长配置
func NewNarrativePhaseSystem(em *ecs.EntityManager, scheduler *TimerScheduler, timings config.PhaseTimings) (*NarrativePhaseSystem, error) {
	if em == nil || scheduler == nil {
		return nil, fmt.Errorf("narrative phase system requires an entity manager and a scheduler")
	}
	if err := timings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid phase timings: %w", err)
	}

	s := &NarrativePhaseSystem{
		entityManager: em,
		scheduler:     scheduler,
		timings:       timings,
		durations:     timings.Durations(),
		chain:         NewTimerGroup(scheduler),
	}

	s.phaseEntity = em.CreateEntity()
	ecs.AddComponent(em, s.phaseEntity, newIdleComponent(0))

	log.Printf("[NarrativePhaseSystem] Initialized (Entity ID: %d), advance thanksHold by %s",
		s.phaseEntity, timings.ThanksHoldAdvance)
	return s, nil
}

func newIdleComponent(generation uint64) *components.NarrativePhaseComponent {
	return &components.NarrativePhaseComponent{
		Phase:      components.PhaseIdle,
		Survey:     components.SurveyHidden,
		Selections: make(map[components.VoteSceneID]components.VoteSelection),
		Layers:     layersFor(components.PhaseIdle, components.SurveyHidden),
		Generation: generation,
		Visited:    map[components.NarrativePhase]bool{components.PhaseIdle: true},
	}
}

// SetOnPhaseChange 设置主阶段变化回调
func (s *NarrativePhaseSystem) SetOnPhaseChange(fn func(from, to components.NarrativePhase)) {
	s.onPhaseChange = fn
}

// SetOnSurveyChange 设置问卷子阶段变化回调
func (s *NarrativePhaseSystem) SetOnSurveyChange(fn func(from, to components.SurveyPhase)) {
	s.onSurveyChange = fn
}

// SetOnVoteRecorded 设置投票被记录时的回调
func (s *NarrativePhaseSystem) SetOnVoteRecorded(fn func(sel components.VoteSelection)) {
	s.onVoteRecorded = fn
}

func (s *NarrativePhaseSystem) component() *components.NarrativePhaseComponent {
	comp, ok := ecs.GetComponent[*components.NarrativePhaseComponent](s.entityManager, s.phaseEntity)
	if !ok {
		// 实体被外部清理时恢复为 idle，保证状态机始终可用
		comp = newIdleComponent(0)
		ecs.AddComponent(s.entityManager, s.phaseEntity, comp)
	}
	return comp
}

// OnVote 用户投票入口
// 返回 true 表示投票被接受并启动了新链
func (s *NarrativePhaseSystem) OnVote(scene components.VoteSceneID, optionID string) bool {
	return s.Dispatch(Event{Kind: EventVote, Scene: scene, OptionID: optionID})
}

// NotifyAnimationComplete 场景动画完成信号入口
// 仅在 thanksHold 且配置为 animation 推进时生效
func (s *NarrativePhaseSystem) NotifyAnimationComplete() bool {
	return s.Dispatch(Event{Kind: EventAnimationComplete})
}

// Dispatch 状态机唯一的转场入口
// 返回 true 表示事件引起了状态变化
func (s *NarrativePhaseSystem) Dispatch(ev Event) bool {
	comp := s.component()

	switch ev.Kind {
	case EventVote:
		return s.handleVote(comp, ev.Scene, ev.OptionID)

	case EventTimer:
		if ev.Generation != comp.Generation {
			log.Printf("[NarrativePhaseSystem] Dropping stale timer (gen %d, current %d)", ev.Generation, comp.Generation)
			return false
		}
		if ev.Survey {
			return s.advanceSurvey(comp, ev.SurveyTarget)
		}
		return s.advance(comp, ev.Target)

	case EventAnimationComplete:
		if comp.Phase != components.PhaseThanksHold || s.timings.ThanksHoldAdvance != config.AdvanceByAnimation {
			return false
		}
		return s.advance(comp, components.PhaseThanksFadeOut)
	}
	return false
}

// handleVote 处理投票事件
// 已经记录过选择的场景直接忽略：不重启链，不产生新的定时器
func (s *NarrativePhaseSystem) handleVote(comp *components.NarrativePhaseComponent, scene components.VoteSceneID, optionID string) bool {
	if optionID == "" {
		return false
	}
	if prev, voted := comp.Selections[scene]; voted {
		log.Printf("[NarrativePhaseSystem] Ignoring repeated vote on %s (already %q)", scene, prev.OptionID)
		return false
	}

	switch scene {
	case components.SceneFeedVote:
		if comp.Phase != components.PhaseIdle {
			return false
		}
		s.recordVote(comp, scene, optionID)
		s.startChain(comp, true)
		s.enterPhase(comp, components.PhaseVotePendingWait)
		return true

	case components.SceneSurveyVote:
		if comp.Phase != components.PhaseNextSceneSteady || comp.Survey != components.SurveyPrompt {
			log.Printf("[NarrativePhaseSystem] Survey vote ignored in %s/%s", comp.Phase, comp.Survey)
			return false
		}
		s.recordVote(comp, scene, optionID)
		s.startChain(comp, false)
		s.enterSurvey(comp, components.SurveyPromptFadeOut)
		return true

	default:
		log.Printf("[NarrativePhaseSystem] Unknown vote scene %q", scene)
		return false
	}
}

func (s *NarrativePhaseSystem) recordVote(comp *components.NarrativePhaseComponent, scene components.VoteSceneID, optionID string) {
	sel := components.VoteSelection{SceneID: scene, OptionID: optionID}
	comp.Selections[scene] = sel
	log.Printf("[NarrativePhaseSystem] Vote recorded: %s = %q", scene, optionID)
	if s.onVoteRecorded != nil {
		s.onVoteRecorded(sel)
	}
}

// startChain 取消上一条链的全部定时器，然后开始新链
func (s *NarrativePhaseSystem) startChain(comp *components.NarrativePhaseComponent, resetVisited bool) {
	s.chain.CancelAll()
	s.chain = NewTimerGroup(s.scheduler)
	comp.Generation++
	if resetVisited {
		comp.Visited = map[components.NarrativePhase]bool{comp.Phase: true}
	}
}

// advance 主链推进：只允许进入紧随当前阶段的下一阶段，且同一序列内不重复进入
func (s *NarrativePhaseSystem) advance(comp *components.NarrativePhaseComponent, target components.NarrativePhase) bool {
	if target != comp.Phase+1 || comp.Visited[target] {
		log.Printf("[NarrativePhaseSystem] Rejecting transition %s -> %s", comp.Phase, target)
		return false
	}
	s.enterPhase(comp, target)
	return true
}

// enterPhase 进入主阶段，写入该阶段的层目标并调度下一次转场
func (s *NarrativePhaseSystem) enterPhase(comp *components.NarrativePhaseComponent, phase components.NarrativePhase) {
	from := comp.Phase
	comp.Phase = phase
	comp.Visited[phase] = true
	comp.Layers = layersFor(phase, comp.Survey)

	log.Printf("[NarrativePhaseSystem] Phase: %s -> %s (gen %d)", from, phase, comp.Generation)
	if s.onPhaseChange != nil {
		s.onPhaseChange(from, phase)
	}

	switch phase {
	case components.PhaseVotePendingWait:
		s.scheduleAdvance(comp, s.durations[0], components.PhaseWhiteout)
	case components.PhaseWhiteout:
		s.scheduleAdvance(comp, s.durations[1], components.PhaseThanksHold)
	case components.PhaseThanksHold:
		if s.timings.ThanksHoldAdvance == config.AdvanceByTimer {
			s.scheduleAdvance(comp, s.durations[2], components.PhaseThanksFadeOut)
		}
	case components.PhaseThanksFadeOut:
		s.scheduleAdvance(comp, s.durations[3], components.PhaseNextSceneFadeIn)
	case components.PhaseNextSceneFadeIn:
		s.scheduleAdvance(comp, s.durations[4], components.PhaseNextSceneSteady)
	case components.PhaseNextSceneSteady:
		s.enterSurvey(comp, components.SurveyPrompt)
	}
}

// advanceSurvey 问卷子链推进
func (s *NarrativePhaseSystem) advanceSurvey(comp *components.NarrativePhaseComponent, target components.SurveyPhase) bool {
	if comp.Phase != components.PhaseNextSceneSteady || target != comp.Survey+1 {
		log.Printf("[NarrativePhaseSystem] Rejecting survey transition %s -> %s", comp.Survey, target)
		return false
	}
	s.enterSurvey(comp, target)
	return true
}

func (s *NarrativePhaseSystem) enterSurvey(comp *components.NarrativePhaseComponent, phase components.SurveyPhase) {
	from := comp.Survey
	comp.Survey = phase
	comp.Layers = layersFor(comp.Phase, phase)

	log.Printf("[NarrativePhaseSystem] Survey: %s -> %s (gen %d)", from, phase, comp.Generation)
	if s.onSurveyChange != nil {
		s.onSurveyChange(from, phase)
	}

	if phase == components.SurveyPromptFadeOut {
		gen := comp.Generation
		s.chain.Schedule(s.durations[5], func() {
			s.Dispatch(Event{Kind: EventTimer, Survey: true, SurveyTarget: components.SurveyResult, Generation: gen})
		})
	}
}

func (s *NarrativePhaseSystem) scheduleAdvance(comp *components.NarrativePhaseComponent, delay time.Duration, target components.NarrativePhase) {
	gen := comp.Generation
	s.chain.Schedule(delay, func() {
		s.Dispatch(Event{Kind: EventTimer, Target: target, Generation: gen})
	})
}

// Reset 卸载或离开页面时调用：同步取消全部定时器并回到 idle
func (s *NarrativePhaseSystem) Reset() {
	s.chain.CancelAll()
	comp := s.component()
	from := comp.Phase
	*comp = *newIdleComponent(comp.Generation + 1)
	log.Printf("[NarrativePhaseSystem] Reset: %s -> idle", from)
}

// PendingTimers 返回当前链仍在等待的定时器数量
func (s *NarrativePhaseSystem) PendingTimers() int {
	return s.chain.Live()
}

// Phase 返回当前主阶段
func (s *NarrativePhaseSystem) Phase() components.NarrativePhase {
	return s.component().Phase
}

// Selection 返回某个场景的投票选择
func (s *NarrativePhaseSystem) Selection(scene components.VoteSceneID) (components.VoteSelection, bool) {
	sel, ok := s.component().Selections[scene]
	return sel, ok
}

// Snapshot 返回渲染层使用的只读快照
func (s *NarrativePhaseSystem) Snapshot() components.NarrativeSnapshot {
	comp := s.component()
	snap := components.NarrativeSnapshot{
		Phase:       comp.Phase,
		SurveyPhase: comp.Survey,
		Layers:      comp.Layers,
	}
	if sel, ok := comp.Selections[components.SceneFeedVote]; ok {
		snap.FeedSelection = sel.OptionID
	}
	if sel, ok := comp.Selections[components.SceneSurveyVote]; ok {
		snap.SurveySelection = sel.OptionID
	}
	snap.FeedInteractive = comp.Phase == components.PhaseIdle && snap.FeedSelection == ""
	snap.SurveyInteractive = comp.Phase == components.PhaseNextSceneSteady && comp.Survey == components.SurveyPrompt
	snap.ResultInteractive = comp.Survey == components.SurveyResult
	return snap
}

// layersFor 阶段到各层目标透明度的声明式映射
// 相邻阶段之间最多只有两层的目标不同
func layersFor(phase components.NarrativePhase, survey components.SurveyPhase) components.LayerTargets {
	var l components.LayerTargets
	l[components.LayerFeedCard] = 1

	if phase >= components.PhaseWhiteout {
		l[components.LayerFeedCard] = 0
		l[components.LayerWhiteout] = 1
	}
	if phase == components.PhaseThanksHold {
		l[components.LayerThanks] = 1
	}
	if phase >= components.PhaseNextSceneFadeIn {
		l[components.LayerNextScene] = 1
		l[components.LayerSurveyPrompt] = 1
	}

	switch survey {
	case components.SurveyPromptFadeOut:
		l[components.LayerSurveyPrompt] = 0
	case components.SurveyResult:
		l[components.LayerSurveyPrompt] = 0
		l[components.LayerSurveyResult] = 1
	}
	return l
}
