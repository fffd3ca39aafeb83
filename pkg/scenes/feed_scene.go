package scenes

import (
	"context"
	"errors"
	"image/color"
	"log"
	"time"

	"github.com/decker502/buyornot/pkg/api"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/ecs"
	"github.com/decker502/buyornot/pkg/game"
	"github.com/decker502/buyornot/pkg/modules"
	"github.com/decker502/buyornot/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// feedLoadTimeout 拉取 Feed 列表的超时
const feedLoadTimeout = 10 * time.Second

var errNoService = errors.New("feed service not configured")

// FeedService Feed 场景使用的后端接口（*api.Client 实现此接口）
type FeedService interface {
	modules.VoteSubmitter
	modules.EmailRegistrar
	ListFeeds(ctx context.Context, size int) ([]api.Feed, error)
}

type feedLoadResult struct {
	feeds []api.Feed
	err   error
}

var (
	feedSceneBackground = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	feedSceneTextColor  = color.RGBA{R: 30, G: 30, B: 35, A: 255}
)

// FeedScene "살까말까" Feed 页面，承载联网投票卡片
type FeedScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	service         FeedService
	records         *game.VoteRecordManager
	cfg             *config.NarrativeConfig

	entityManager *ecs.EntityManager
	drag          *utils.DragManager
	face          text.Face

	width, height float64

	loads   chan feedLoadResult
	cancel  context.CancelFunc
	loading bool
	loadErr error
	module  *modules.FeedVoteModule
	sheet   *modules.PreRegisterSheetModule

	disposed bool
}

// NewFeedScene 创建 Feed 场景并开始异步加载第一条 Feed
// records 可为 nil；事前预约成功时写入本机记录
func NewFeedScene(rm *game.ResourceManager, sm *game.SceneManager, service FeedService, records *game.VoteRecordManager, cfg *config.NarrativeConfig) *FeedScene {
	if cfg == nil {
		cfg = config.DefaultNarrativeConfig()
	}
	if rm == nil {
		rm = game.NewResourceManager()
	}
	s := &FeedScene{
		resourceManager: rm,
		sceneManager:    sm,
		service:         service,
		records:         records,
		cfg:             cfg,
		entityManager:   ecs.NewEntityManager(),
		drag:            utils.NewDragManager(),
		face:            rm.Face(cfg.FontPath, 18),
		width:           config.SurfaceWidth,
		height:          config.SurfaceHeight,
		loads:           make(chan feedLoadResult, 1),
	}
	s.initSheet()
	s.load()
	return s
}

// initSheet 创建底部的事前预约横幅；没有后端时不显示
func (s *FeedScene) initSheet() {
	if s.service == nil {
		return
	}
	sheet, err := modules.NewPreRegisterSheetModule(s.entityManager, s.service, s.face, s.width, s.height)
	if err != nil {
		log.Printf("[FeedScene] Failed to create pre-register sheet: %v", err)
		return
	}
	if s.records != nil && s.records.Record().Registered {
		log.Printf("[FeedScene] Device already pre-registered")
	}
	sheet.SetOnRegistered(func(string) {
		if s.records == nil {
			return
		}
		if err := s.records.MarkRegistered(); err != nil {
			log.Printf("[FeedScene] Warning: failed to save registration: %v", err)
		}
	})
	s.sheet = sheet
}

func (s *FeedScene) load() {
	if s.service == nil {
		s.loadErr = errNoService
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), feedLoadTimeout)
	s.cancel = cancel
	s.loading = true

	service, loads := s.service, s.loads
	go func() {
		defer cancel()
		feeds, err := service.ListFeeds(ctx, 1)
		loads <- feedLoadResult{feeds: feeds, err: err}
	}()
	log.Printf("[FeedScene] Loading feeds...")
}

// feedVoteOptions Feed 投票选项：ID 固定为 yes/no，文字沿用叙事页的 Feed 选项
func (s *FeedScene) feedVoteOptions() []config.Option {
	ids := []string{"yes", "no"}
	opts := make([]config.Option, len(ids))
	for i, id := range ids {
		opts[i] = config.Option{ID: id, Label: id}
		if i < len(s.cfg.Texts.FeedOptions) {
			opts[i].Label = s.cfg.Texts.FeedOptions[i].Label
		}
	}
	return opts
}

// Update 每帧调用
func (s *FeedScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}
	if s.sheet != nil {
		s.sheet.UpdateInput(deltaTime)
	}
	s.drag.Update()
	tapped := s.drag.IsTap(config.TapSlop)
	info := s.drag.GetInfo()
	s.step(float64(info.CurrentX), float64(info.CurrentY), tapped)
}

func (s *FeedScene) step(x, y float64, tapped bool) {
	select {
	case res := <-s.loads:
		s.loading = false
		s.cancel = nil
		s.applyLoad(res)
	default:
	}

	if s.sheet != nil {
		s.sheet.Update()
		// 横幅与弹层在卡片之上，优先处理点击
		if tapped && s.sheet.HandleTap(x, y) {
			tapped = false
		}
	}

	if s.module == nil {
		return
	}
	s.module.Update()
	if tapped {
		s.module.HandleTap(x, y)
	}
}

func (s *FeedScene) applyLoad(res feedLoadResult) {
	if res.err != nil {
		s.loadErr = res.err
		log.Printf("[FeedScene] Failed to load feeds: %v", res.err)
		return
	}
	if len(res.feeds) == 0 {
		log.Printf("[FeedScene] No feeds")
		return
	}

	m, err := modules.NewFeedVoteModule(s.entityManager, s.service, res.feeds[0], s.feedVoteOptions(), s.face, s.width, s.height)
	if err != nil {
		s.loadErr = err
		log.Printf("[FeedScene] Failed to create vote module: %v", err)
		return
	}
	m.SetOnVoted(func(optionID string, tally api.VoteTally) {
		yes, no := tally.Percentages()
		log.Printf("[FeedScene] Feed %d voted %s (%d%% / %d%%)", res.feeds[0].FeedID, optionID, yes, no)
	})
	s.module = m
}

// Draw 绘制
func (s *FeedScene) Draw(screen *ebiten.Image) {
	screen.Fill(feedSceneBackground)
	switch {
	case s.module != nil:
		s.module.Draw(screen)
	case s.loading:
		s.drawMessage(screen, "...")
	case s.loadErr != nil:
		s.drawMessage(screen, "오류가 발생했어요. 다시 시도해주세요.")
	default:
		s.drawMessage(screen, "아직 게시글이 없어요")
	}
	if s.sheet != nil {
		s.sheet.Draw(screen)
	}
}

func (s *FeedScene) drawMessage(screen *ebiten.Image, msg string) {
	w, _ := text.Measure(msg, s.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((s.width-w)/2, s.height/2)
	op.ColorScale.ScaleWithColor(feedSceneTextColor)
	text.Draw(screen, msg, s.face, op)
}

// SetViewportSize 视口尺寸变化（卡片在下次加载时使用新尺寸）
func (s *FeedScene) SetViewportSize(width, height float64) {
	s.width, s.height = width, height
	if s.sheet != nil {
		s.sheet.SetViewportSize(width, height)
	}
}

// Dispose 取消进行中的请求
func (s *FeedScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.module != nil {
		s.module.Close()
	}
	if s.sheet != nil {
		s.sheet.Close()
	}
	s.entityManager.Clear()
	log.Printf("[FeedScene] Disposed")
}

// Sheet 事前预约横幅与弹层（没有后端时为 nil）
func (s *FeedScene) Sheet() *modules.PreRegisterSheetModule {
	return s.sheet
}

// Module 当前投票卡片（尚未加载时为 nil）
func (s *FeedScene) Module() *modules.FeedVoteModule {
	return s.module
}
