package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/ecs"
	"github.com/decker502/buyornot/pkg/game"
	"github.com/decker502/buyornot/pkg/systems"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneNameFeed 快捷按钮跳转的场景名
const SceneNameFeed = "feed"

// PreRegisterScene 事前预约叙事页面
//
// 滚动部分（Scene 1）由 ScrollSurface → ViewportTracker → SceneGeometryCalculator 驱动，
// 投票之后的部分由 NarrativePhaseSystem 的定时链驱动，两者只在 ComposeFrame 中合并。
type PreRegisterScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	records         *game.VoteRecordManager
	cfg             *config.NarrativeConfig

	// ECS 框架
	entityManager *ecs.EntityManager

	// 系统
	surface   *game.ScrollSurface
	tracker   *systems.ViewportTracker
	geometry  *systems.SceneGeometryCalculator
	scheduler *systems.TimerScheduler
	phases    *systems.NarrativePhaseSystem
	fades     *systems.FadeLayerSystem
	renderer  *systems.SceneRenderSystem

	sessionID string
	geom      components.SceneGeometry
	frame     systems.Frame
	disposed  bool
}

// NewPreRegisterScene 创建叙事页面
//
// 参数：
//   - rm: 资源管理器（字体）
//   - sm: 场景管理器，用于快捷按钮跳转，可为 nil
//   - records: 本机投票记录，可为 nil
//   - cfg: 叙事配置，nil 时使用默认配置
func NewPreRegisterScene(rm *game.ResourceManager, sm *game.SceneManager, records *game.VoteRecordManager, cfg *config.NarrativeConfig) (*PreRegisterScene, error) {
	if cfg == nil {
		cfg = config.DefaultNarrativeConfig()
	}
	if rm == nil {
		rm = game.NewResourceManager()
	}

	scene := &PreRegisterScene{
		resourceManager: rm,
		sceneManager:    sm,
		records:         records,
		cfg:             cfg,
		entityManager:   ecs.NewEntityManager(),
		sessionID:       uuid.NewString(),
	}

	var err error
	scene.geometry, err = systems.NewSceneGeometryCalculator(cfg.SceneOne)
	if err != nil {
		return nil, fmt.Errorf("scene geometry: %w", err)
	}
	scene.scheduler = systems.NewTimerScheduler()
	scene.phases, err = systems.NewNarrativePhaseSystem(scene.entityManager, scene.scheduler, cfg.Timings)
	if err != nil {
		return nil, fmt.Errorf("narrative phases: %w", err)
	}
	scene.fades = systems.NewFadeLayerSystem(scene.entityManager, cfg.Fade, scene.phases.Snapshot().Layers)
	scene.renderer = systems.NewSceneRenderSystem(rm, cfg.FontPath, cfg.Texts)

	scene.phases.SetOnVoteRecorded(scene.onVoteRecorded)
	scene.fades.SetOnSettled(func(layer components.LayerID, value float64) {
		// 感谢场景完全显示即为动画完成；计时模式下该信号会被忽略
		if layer == components.LayerThanks && value >= 1 {
			scene.phases.NotifyAnimationComplete()
		}
	})

	scene.surface = game.NewScrollSurface(cfg.SceneOne)
	scene.tracker = systems.NewViewportTracker()
	if err := scene.tracker.Attach(scene.surface, scene.onScroll); err != nil {
		return nil, fmt.Errorf("attach viewport: %w", err)
	}
	scene.compose()

	if records != nil {
		if err := records.BeginSession(); err != nil {
			log.Printf("[PreRegisterScene] Warning: failed to save session: %v", err)
		}
		if records.Record().HasVoted {
			log.Printf("[PreRegisterScene] Returning visitor (last feed vote %q)", records.Record().FeedOptionID)
		}
	}

	log.Printf("[PreRegisterScene] Session %s started", scene.sessionID)
	return scene, nil
}

// onScroll ViewportTracker 的监听器：滚动或尺寸变化时重新计算几何
func (s *PreRegisterScene) onScroll(state components.ScrollState) {
	s.geom = s.geometry.Compute(state)
}

func (s *PreRegisterScene) onVoteRecorded(sel components.VoteSelection) {
	log.Printf("[PreRegisterScene] Session %s voted %s=%s", s.sessionID, sel.SceneID, sel.OptionID)
	if s.records == nil {
		return
	}
	if err := s.records.RecordVote(string(sel.SceneID), sel.OptionID); err != nil {
		log.Printf("[PreRegisterScene] Warning: failed to save vote: %v", err)
	}
}

// Update 每帧调用
func (s *PreRegisterScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}
	tap, tapped := s.surface.Update()
	s.step(deltaTime, tap, tapped)
}

// step 推进一帧；点击按上一帧显示的画面做命中测试
func (s *PreRegisterScene) step(deltaTime float64, tap game.Tap, tapped bool) {
	if tapped && s.handleTap(tap.X, tap.Y) {
		return
	}

	s.tracker.Update(deltaTime)
	s.scheduler.Update(deltaTime)
	if s.disposed {
		return
	}
	s.fades.SetTargets(s.phases.Snapshot().Layers)
	s.fades.Update(deltaTime)
	s.compose()
}

// handleTap 处理点击；场景被切换走时返回 true
func (s *PreRegisterScene) handleTap(x, y float64) bool {
	hit, ok := s.frame.HitTest(x, y)
	if !ok {
		return false
	}
	switch hit.Kind {
	case systems.HitVote:
		s.phases.OnVote(hit.Scene, hit.OptionID)
	case systems.HitShortcut:
		log.Printf("[PreRegisterScene] Shortcut tapped")
		if s.sceneManager != nil && s.sceneManager.LoadScene(SceneNameFeed) {
			return true
		}
	}
	return false
}

func (s *PreRegisterScene) compose() {
	w, h := s.surface.ContainerSize()
	s.frame = systems.ComposeFrame(s.geom, s.phases.Snapshot(), s.cfg.Texts, w, h)
}

// Draw 绘制当前帧
func (s *PreRegisterScene) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	s.renderer.Draw(screen, s.frame, s.fades.Opacities())
}

// SetViewportSize 视口尺寸变化
func (s *PreRegisterScene) SetViewportSize(width, height float64) {
	if s.disposed {
		return
	}
	s.surface.SetViewportSize(width, height)
	s.tracker.Update(0)
	s.compose()
}

// Dispose 离开页面：同步取消全部定时器并解除视口监听
func (s *PreRegisterScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.phases.Reset()
	s.scheduler.Close()
	s.tracker.Detach()
	s.entityManager.Clear()
	log.Printf("[PreRegisterScene] Session %s disposed", s.sessionID)
}

// Phase 当前叙事阶段
func (s *PreRegisterScene) Phase() components.NarrativePhase {
	return s.phases.Phase()
}

// Frame 最近一次合成的画面
func (s *PreRegisterScene) Frame() systems.Frame {
	return s.frame
}

// Surface 滚动容器
func (s *PreRegisterScene) Surface() *game.ScrollSurface {
	return s.surface
}
