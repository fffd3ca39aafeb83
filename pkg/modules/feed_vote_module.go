package modules

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/decker502/buyornot/pkg/api"
	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/ecs"
	"github.com/decker502/buyornot/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DefaultVoteTimeout 单次投票请求超时
const DefaultVoteTimeout = 8 * time.Second

// VoteSubmitter 提交 Feed 投票（*api.Client 实现此接口）
type VoteSubmitter interface {
	SubmitVote(ctx context.Context, feedID int64, optionID string) (api.VoteTally, error)
}

// FeedVoteState 投票卡片状态
type FeedVoteState int

const (
	// FeedVoteIdle 未投票，可以点击
	FeedVoteIdle FeedVoteState = iota
	// FeedVoteSubmitting 请求进行中
	FeedVoteSubmitting
	// FeedVoteDone 已投票，显示占比
	FeedVoteDone
	// FeedVoteFailed 上次请求失败，可以重试
	FeedVoteFailed
)

func (s FeedVoteState) String() string {
	switch s {
	case FeedVoteIdle:
		return "idle"
	case FeedVoteSubmitting:
		return "submitting"
	case FeedVoteDone:
		return "done"
	case FeedVoteFailed:
		return "failed"
	default:
		return fmt.Sprintf("FeedVoteState(%d)", int(s))
	}
}

type voteResult struct {
	optionID string
	tally    api.VoteTally
	err      error
}

var (
	feedCardColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	feedButtonColor   = color.RGBA{R: 242, G: 243, B: 247, A: 255}
	feedBarColor      = color.RGBA{R: 225, G: 225, B: 230, A: 255}
	feedSelectedColor = color.RGBA{R: 255, G: 112, B: 67, A: 255}
	feedTextColor     = color.RGBA{R: 30, G: 30, B: 35, A: 255}
	feedErrorColor    = color.RGBA{R: 220, G: 60, B: 60, A: 255}
)

// FeedVoteModule 联网的 Feed 投票卡片
//
// 点击选项后在 goroutine 中调用 SubmitVote，结果经 channel 回到 Update，
// 所有界面状态只在主循环中修改。投票中或投票后的点击被忽略。
type FeedVoteModule struct {
	entityManager *ecs.EntityManager
	submitter     VoteSubmitter
	feed          api.Feed
	timeout       time.Duration

	face          text.Face
	width, height float64

	state    FeedVoteState
	selected string
	tally    api.VoteTally
	lastErr  error

	results chan voteResult
	cancel  context.CancelFunc

	onVoted func(optionID string, tally api.VoteTally)
}

// NewFeedVoteModule 创建投票卡片
//
// 参数：
//   - em: 按钮实体所在的 EntityManager
//   - submitter: 投票接口
//   - feed: 要展示的 Feed
//   - options: 选项（ID 与文字）
//   - face: 文字字体
//   - width, height: 视口尺寸
func NewFeedVoteModule(em *ecs.EntityManager, submitter VoteSubmitter, feed api.Feed, options []config.Option, face text.Face, width, height float64) (*FeedVoteModule, error) {
	if em == nil || submitter == nil {
		return nil, fmt.Errorf("feed vote module: entity manager and submitter are required")
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("feed vote module: no options")
	}

	m := &FeedVoteModule{
		entityManager: em,
		submitter:     submitter,
		feed:          feed,
		timeout:       DefaultVoteTimeout,
		face:          face,
		width:         width,
		height:        height,
		tally:         feed.Tally(),
		results:       make(chan voteResult, 1),
	}

	rects := config.StackButtons(width, height, len(options), config.FeedOptionHeight, height*0.25)
	for i, opt := range options {
		id := em.CreateEntity()
		r := rects[i]
		ecs.AddComponent(em, id, &components.VoteButtonComponent{
			OptionID: opt.ID,
			Label:    opt.Label,
			X:        r.X,
			Y:        r.Y,
			Width:    r.W,
			Height:   r.H,
		})
	}

	// 服务端记录本设备已投过票时直接展示结果
	if feed.HasVoted {
		m.applyResult(voteResult{optionID: myChoiceOption(feed.MyVoteChoice), tally: m.tally})
	}

	log.Printf("[FeedVoteModule] Created for feed %d with %d options", feed.FeedID, len(options))
	return m, nil
}

func myChoiceOption(choice string) string {
	switch api.VoteChoice(choice) {
	case api.ChoiceYes:
		return "yes"
	case api.ChoiceNo:
		return "no"
	default:
		return ""
	}
}

// SetTimeout 修改请求超时
func (m *FeedVoteModule) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// SetOnVoted 投票成功回调（在 Update 中调用）
func (m *FeedVoteModule) SetOnVoted(fn func(optionID string, tally api.VoteTally)) {
	m.onVoted = fn
}

// State 当前状态
func (m *FeedVoteModule) State() FeedVoteState {
	return m.state
}

// Selected 已选择的选项
func (m *FeedVoteModule) Selected() string {
	return m.selected
}

// Tally 最新计数
func (m *FeedVoteModule) Tally() api.VoteTally {
	return m.tally
}

// LastError 最近一次失败的错误
func (m *FeedVoteModule) LastError() error {
	return m.lastErr
}

// HandleTap 处理点击，命中选项时发起投票，返回是否发起
func (m *FeedVoteModule) HandleTap(x, y float64) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.VoteButtonComponent](m.entityManager) {
		btn, _ := ecs.GetComponent[*components.VoteButtonComponent](m.entityManager, id)
		if btn.Contains(x, y) {
			return m.Vote(btn.OptionID)
		}
	}
	return false
}

// Vote 对选项发起投票
// 投票中或已投票时忽略并返回 false
func (m *FeedVoteModule) Vote(optionID string) bool {
	if m.state == FeedVoteSubmitting || m.state == FeedVoteDone {
		log.Printf("[FeedVoteModule] Ignored vote %q in state %s", optionID, m.state)
		return false
	}
	if !m.feed.IsVoting() {
		log.Printf("[FeedVoteModule] Feed %d is closed", m.feed.FeedID)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel
	m.state = FeedVoteSubmitting
	m.lastErr = nil

	feedID := m.feed.FeedID
	results := m.results
	go func() {
		defer cancel()
		tally, err := m.submitter.SubmitVote(ctx, feedID, optionID)
		results <- voteResult{optionID: optionID, tally: tally, err: err}
	}()
	log.Printf("[FeedVoteModule] Submitting vote %q for feed %d", optionID, feedID)
	return true
}

// Update 取回异步投票结果（每帧调用）
func (m *FeedVoteModule) Update() {
	select {
	case res := <-m.results:
		m.cancel = nil
		if res.err != nil {
			m.state = FeedVoteFailed
			m.lastErr = res.err
			log.Printf("[FeedVoteModule] Vote failed: %v", res.err)
			return
		}
		m.applyResult(res)
		if m.onVoted != nil {
			m.onVoted(res.optionID, res.tally)
		}
	default:
	}
}

func (m *FeedVoteModule) applyResult(res voteResult) {
	m.state = FeedVoteDone
	m.selected = res.optionID
	m.tally = res.tally

	yes, no := res.tally.Percentages()
	for _, id := range ecs.GetEntitiesWith1[*components.VoteButtonComponent](m.entityManager) {
		btn, _ := ecs.GetComponent[*components.VoteButtonComponent](m.entityManager, id)
		switch btn.OptionID {
		case "yes":
			btn.Percentage = yes
		case "no":
			btn.Percentage = no
		}
		btn.Selected = btn.OptionID == res.optionID
	}
	log.Printf("[FeedVoteModule] Voted %q: yes=%d%% no=%d%%", res.optionID, yes, no)
}

// Buttons 按钮组件（按创建顺序）
func (m *FeedVoteModule) Buttons() []*components.VoteButtonComponent {
	ids := ecs.GetEntitiesWith1[*components.VoteButtonComponent](m.entityManager)
	out := make([]*components.VoteButtonComponent, 0, len(ids))
	for _, id := range ids {
		btn, _ := ecs.GetComponent[*components.VoteButtonComponent](m.entityManager, id)
		out = append(out, btn)
	}
	return out
}

// Close 取消进行中的请求
func (m *FeedVoteModule) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Draw 绘制卡片
func (m *FeedVoteModule) Draw(screen *ebiten.Image) {
	buttons := m.Buttons()
	if len(buttons) == 0 {
		return
	}
	top := m.height * 0.18
	last := buttons[len(buttons)-1]
	bottom := last.Y + last.Height + 16
	vector.DrawFilledRect(screen, float32(config.CardMarginX-8), float32(top), float32(m.width-2*config.CardMarginX+16), float32(bottom-top), feedCardColor, true)

	y := top + 20
	if m.feed.Author.Nickname != "" {
		m.drawText(screen, m.feed.Author.Nickname, config.CardMarginX+8, y, feedBarColor)
		y += 28
	}
	for _, line := range utils.WrapText(m.feed.Content, m.face, m.width-4*config.CardMarginX) {
		m.drawText(screen, line, config.CardMarginX+8, y, feedTextColor)
		y += 28
	}
	if m.feed.Price > 0 {
		m.drawText(screen, fmt.Sprintf("%d원", m.feed.Price), config.CardMarginX+8, y, feedTextColor)
	}

	for _, b := range buttons {
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), feedButtonColor, true)
		if m.state == FeedVoteDone {
			bar := feedBarColor
			if b.Selected {
				bar = feedSelectedColor
			}
			vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width*float64(b.Percentage)/100), float32(b.Height), bar, true)
			m.drawText(screen, fmt.Sprintf("%d%%", b.Percentage), b.X+b.Width-56, b.Y+b.Height/3, feedTextColor)
		}
		m.drawText(screen, b.Label, b.X+16, b.Y+b.Height/3, feedTextColor)
	}

	if m.state == FeedVoteFailed {
		m.drawText(screen, "오류가 발생했어요. 다시 시도해주세요.", config.CardMarginX, bottom+16, feedErrorColor)
	}
}

func (m *FeedVoteModule) drawText(screen *ebiten.Image, msg string, x, y float64, clr color.RGBA) {
	if m.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, m.face, op)
}
