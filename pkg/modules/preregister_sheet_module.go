package modules

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/decker502/buyornot/pkg/api"
	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/ecs"
	"github.com/decker502/buyornot/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DefaultRegisterTimeout 单次邮箱登记请求超时
const DefaultRegisterTimeout = 10 * time.Second

// 事前预约弹层文案
const (
	sheetBannerLabel      = "안내  사전 예약하고 앱 출시 안내를 받아보세요!"
	sheetTitle            = "앱 출시 소식을 이메일로 알려드릴게요"
	sheetPlaceholder      = "이메일 주소를 입력해주세요"
	sheetSubmitLabel      = "제출하기"
	sheetSubmittedMessage = "제출되었어요! 앱 런칭 후 안내드릴게요 :)"
	sheetAlreadyMessage   = "이미 신청한 이메일입니다."
	sheetFailedMessage    = "오류가 발생했어요. 다시 시도해주세요."
)

const emailMaxLength = 254

// EmailRegistrar 登记事前预约邮箱（*api.Client 实现此接口）
type EmailRegistrar interface {
	RegisterEmail(ctx context.Context, email string) error
}

// SheetState 事前预约弹层状态
type SheetState int

const (
	// SheetHidden 弹层关闭，只显示入口横幅
	SheetHidden SheetState = iota
	// SheetEditing 弹层打开，输入邮箱
	SheetEditing
	// SheetSubmitting 请求进行中
	SheetSubmitting
)

func (s SheetState) String() string {
	switch s {
	case SheetHidden:
		return "hidden"
	case SheetEditing:
		return "editing"
	case SheetSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("SheetState(%d)", int(s))
	}
}

type registerResult struct {
	email string
	err   error
}

var (
	sheetBannerColor  = color.RGBA{R: 232, G: 233, B: 238, A: 255}
	sheetOverlayColor = color.RGBA{R: 0, G: 0, B: 0, A: 120}
	sheetColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	sheetInputColor   = color.RGBA{R: 242, G: 243, B: 247, A: 255}
	sheetPrimaryColor = color.RGBA{R: 40, G: 40, B: 50, A: 255}
	sheetDisabled     = color.RGBA{R: 190, G: 190, B: 198, A: 255}
	sheetTextColor    = color.RGBA{R: 30, G: 30, B: 35, A: 255}
	sheetMutedColor   = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	sheetInverseColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	sheetNoticeColor  = color.RGBA{R: 46, G: 160, B: 90, A: 255}
)

// PreRegisterSheetModule 事前预约入口横幅与邮箱输入弹层
//
// 横幅常驻页面底部，点击后打开弹层。提交在 goroutine 中调用 RegisterEmail，
// 结果经 channel 回到 Update。成功后关闭弹层并显示提示，失败时保留输入并显示错误。
type PreRegisterSheetModule struct {
	entityManager *ecs.EntityManager
	registrar     EmailRegistrar
	textInput     *systems.TextInputSystem
	inputEntity   ecs.EntityID
	timeout       time.Duration

	face          text.Face
	width, height float64

	banner, sheet, submit, closeBtn config.Rect

	state      SheetState
	errMessage string
	notice     string
	registered bool

	results chan registerResult
	cancel  context.CancelFunc

	onRegistered func(email string)
}

// NewPreRegisterSheetModule 创建事前预约弹层
func NewPreRegisterSheetModule(em *ecs.EntityManager, registrar EmailRegistrar, face text.Face, width, height float64) (*PreRegisterSheetModule, error) {
	if em == nil || registrar == nil {
		return nil, fmt.Errorf("pre-register sheet: entity manager and registrar are required")
	}
	m := &PreRegisterSheetModule{
		entityManager: em,
		registrar:     registrar,
		textInput:     systems.NewTextInputSystem(em),
		timeout:       DefaultRegisterTimeout,
		face:          face,
		results:       make(chan registerResult, 1),
	}
	m.inputEntity = em.CreateEntity()
	ecs.AddComponent(em, m.inputEntity, &components.TextInputComponent{
		MaxLength:   emailMaxLength,
		Placeholder: sheetPlaceholder,
	})
	m.SetViewportSize(width, height)
	return m, nil
}

// SetViewportSize 按视口尺寸重新布局
func (m *PreRegisterSheetModule) SetViewportSize(width, height float64) {
	m.width, m.height = width, height
	innerW := width - 2*config.CardMarginX

	m.banner = config.Rect{X: config.CardMarginX, Y: height - 24 - 52, W: innerW, H: 52}
	sheetTop := height * 0.58
	m.sheet = config.Rect{X: 0, Y: sheetTop, W: width, H: height - sheetTop}
	m.closeBtn = config.Rect{X: width - config.CardMarginX - 44, Y: sheetTop + 12, W: 44, H: 44}
	m.submit = config.Rect{X: config.CardMarginX, Y: sheetTop + 176, W: innerW, H: 56}

	if input := m.Input(); input != nil {
		input.X, input.Y = config.CardMarginX, sheetTop+96
		input.Width, input.Height = innerW, 52
	}
}

// SetTimeout 修改请求超时
func (m *PreRegisterSheetModule) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// SetOnRegistered 登记成功回调（在 Update 中调用）
func (m *PreRegisterSheetModule) SetOnRegistered(fn func(email string)) {
	m.onRegistered = fn
}

// State 当前状态
func (m *PreRegisterSheetModule) State() SheetState {
	return m.state
}

// Registered 本次会话是否已登记成功
func (m *PreRegisterSheetModule) Registered() bool {
	return m.registered
}

// ErrorMessage 输入框下方的错误提示
func (m *PreRegisterSheetModule) ErrorMessage() string {
	return m.errMessage
}

// Notice 登记成功后的提示
func (m *PreRegisterSheetModule) Notice() string {
	return m.notice
}

// Input 邮箱输入框组件
func (m *PreRegisterSheetModule) Input() *components.TextInputComponent {
	input, _ := ecs.GetComponent[*components.TextInputComponent](m.entityManager, m.inputEntity)
	return input
}

// BannerRect 入口横幅区域
func (m *PreRegisterSheetModule) BannerRect() config.Rect { return m.banner }

// SubmitRect 提交按钮区域
func (m *PreRegisterSheetModule) SubmitRect() config.Rect { return m.submit }

// CloseRect 关闭按钮区域
func (m *PreRegisterSheetModule) CloseRect() config.Rect { return m.closeBtn }

// Open 打开弹层并让输入框获得焦点
func (m *PreRegisterSheetModule) Open() bool {
	if m.state != SheetHidden {
		return false
	}
	m.state = SheetEditing
	m.errMessage = ""
	m.notice = ""
	if input := m.Input(); input != nil {
		input.IsFocused = true
	}
	log.Printf("[PreRegisterSheet] Opened")
	return true
}

// Dismiss 关闭弹层，请求进行中时忽略
func (m *PreRegisterSheetModule) Dismiss() bool {
	if m.state != SheetEditing {
		return false
	}
	m.state = SheetHidden
	m.errMessage = ""
	if input := m.Input(); input != nil {
		input.IsFocused = false
	}
	log.Printf("[PreRegisterSheet] Dismissed")
	return true
}

// CanSubmit 输入的邮箱是否可以提交
func (m *PreRegisterSheetModule) CanSubmit() bool {
	input := m.Input()
	return m.state == SheetEditing && input != nil && api.ValidateEmail(input.Text) == nil
}

// Submit 提交邮箱
func (m *PreRegisterSheetModule) Submit() bool {
	if !m.CanSubmit() {
		return false
	}
	email := m.Input().Text

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel
	m.state = SheetSubmitting
	m.errMessage = ""

	registrar, results := m.registrar, m.results
	go func() {
		defer cancel()
		results <- registerResult{email: email, err: registrar.RegisterEmail(ctx, email)}
	}()
	log.Printf("[PreRegisterSheet] Submitting email")
	return true
}

// Update 取回异步登记结果（每帧调用）
func (m *PreRegisterSheetModule) Update() {
	select {
	case res := <-m.results:
		m.cancel = nil
		if res.err != nil {
			m.state = SheetEditing
			if errors.Is(res.err, api.ErrAlreadyRegistered) {
				m.errMessage = sheetAlreadyMessage
			} else {
				m.errMessage = sheetFailedMessage
			}
			log.Printf("[PreRegisterSheet] Register failed: %v", res.err)
			return
		}
		m.state = SheetHidden
		m.registered = true
		m.notice = sheetSubmittedMessage
		if input := m.Input(); input != nil {
			input.Clear()
			input.IsFocused = false
		}
		log.Printf("[PreRegisterSheet] Registered")
		if m.onRegistered != nil {
			m.onRegistered(res.email)
		}
	default:
	}
}

// UpdateInput 读取键盘：字符输入、Enter 提交、Esc 关闭
func (m *PreRegisterSheetModule) UpdateInput(deltaTime float64) {
	if m.state != SheetEditing {
		return
	}
	m.textInput.Update(deltaTime)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		m.Submit()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		m.Dismiss()
	}
}

// HandleTap 处理点击，返回是否被弹层或横幅消费
func (m *PreRegisterSheetModule) HandleTap(x, y float64) bool {
	switch m.state {
	case SheetHidden:
		if m.banner.Contains(x, y) {
			return m.Open()
		}
		return false
	case SheetEditing:
		switch {
		case m.closeBtn.Contains(x, y):
			m.Dismiss()
		case m.submit.Contains(x, y):
			m.Submit()
		case m.sheet.Contains(x, y):
			if input := m.Input(); input != nil {
				input.IsFocused = input.Contains(x, y)
			}
		default:
			// 点击遮罩关闭
			m.Dismiss()
		}
		return true
	default:
		return true
	}
}

// Close 取消进行中的请求
func (m *PreRegisterSheetModule) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Draw 绘制横幅与弹层
func (m *PreRegisterSheetModule) Draw(screen *ebiten.Image) {
	fillRect(screen, m.banner, sheetBannerColor)
	if m.notice != "" {
		m.drawText(screen, m.notice, m.banner.X+16, m.banner.Y+m.banner.H/3, sheetNoticeColor)
	} else {
		m.drawText(screen, sheetBannerLabel, m.banner.X+16, m.banner.Y+m.banner.H/3, sheetTextColor)
	}

	if m.state == SheetHidden {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(m.width), float32(m.height), sheetOverlayColor, true)
	fillRect(screen, m.sheet, sheetColor)
	m.drawText(screen, sheetTitle, config.CardMarginX, m.sheet.Y+32, sheetTextColor)
	m.drawText(screen, "X", m.closeBtn.X+16, m.closeBtn.Y+14, sheetMutedColor)

	if input := m.Input(); input != nil {
		fillRect(screen, config.Rect{X: input.X, Y: input.Y, W: input.Width, H: input.Height}, sheetInputColor)
		shown, clr := input.Text, sheetTextColor
		if shown == "" {
			shown, clr = input.Placeholder, sheetMutedColor
		}
		if input.CursorVisible && input.IsFocused {
			runes := []rune(input.Text)
			pos := min(max(input.CursorPosition, 0), len(runes))
			shown = string(runes[:pos]) + "|" + string(runes[pos:])
			clr = sheetTextColor
		}
		m.drawText(screen, shown, input.X+12, input.Y+input.Height/3, clr)
		if m.errMessage != "" {
			m.drawText(screen, m.errMessage, input.X, input.Y+input.Height+8, feedErrorColor)
		}
	}

	btn := sheetDisabled
	if m.CanSubmit() {
		btn = sheetPrimaryColor
	}
	fillRect(screen, m.submit, btn)
	submitLabel := sheetSubmitLabel
	if m.state == SheetSubmitting {
		submitLabel = "..."
	}
	m.drawText(screen, submitLabel, m.submit.X+m.submit.W/2-32, m.submit.Y+m.submit.H/3, sheetInverseColor)
}

func (m *PreRegisterSheetModule) drawText(screen *ebiten.Image, msg string, x, y float64, clr color.RGBA) {
	if m.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, m.face, op)
}

func fillRect(screen *ebiten.Image, r config.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, true)
}
