package systems

import (
	"log"

	"github.com/decker502/buyornot/pkg/components"
	"github.com/decker502/buyornot/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// cursorBlinkInterval 光标闪烁间隔（秒）
const cursorBlinkInterval = 0.5

// KeySample 一帧的键盘采样
type KeySample struct {
	Chars     []rune
	Backspace bool
	Delete    bool
	Left      bool
	Right     bool
	Home      bool
	End       bool
}

func (k KeySample) empty() bool {
	return len(k.Chars) == 0 && !k.Backspace && !k.Delete && !k.Left && !k.Right && !k.Home && !k.End
}

// SampleKeys 读取当前帧的键盘输入
// 退格、删除与方向键按住超过 30 帧后每 3 帧重复一次
func SampleKeys() KeySample {
	return KeySample{
		Chars:     ebiten.AppendInputChars(nil),
		Backspace: keyRepeat(ebiten.KeyBackspace),
		Delete:    keyRepeat(ebiten.KeyDelete),
		Left:      keyRepeat(ebiten.KeyArrowLeft),
		Right:     keyRepeat(ebiten.KeyArrowRight),
		Home:      inpututil.IsKeyJustPressed(ebiten.KeyHome),
		End:       inpututil.IsKeyJustPressed(ebiten.KeyEnd),
	}
}

func keyRepeat(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

// TextInputSystem 文本输入系统
// 处理输入框的键盘输入与光标闪烁
type TextInputSystem struct {
	entityManager *ecs.EntityManager
}

// NewTextInputSystem 创建文本输入系统
func NewTextInputSystem(em *ecs.EntityManager) *TextInputSystem {
	return &TextInputSystem{entityManager: em}
}

// Update 从 Ebitengine 采样键盘并更新获得焦点的输入框
func (s *TextInputSystem) Update(deltaTime float64) {
	s.Step(deltaTime, SampleKeys())
}

// Step 用一次键盘采样推进所有输入框
func (s *TextInputSystem) Step(deltaTime float64, keys KeySample) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager) {
		input, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		if !input.IsFocused {
			input.CursorVisible = false
			continue
		}

		input.CursorBlinkTimer += deltaTime
		if input.CursorBlinkTimer >= cursorBlinkInterval {
			input.CursorBlinkTimer = 0
			input.CursorVisible = !input.CursorVisible
		}

		if keys.empty() {
			continue
		}
		s.applyKeys(input, keys)
		// 输入时光标保持可见
		input.CursorBlinkTimer = 0
		input.CursorVisible = true
	}
}

func (s *TextInputSystem) applyKeys(input *components.TextInputComponent, keys KeySample) {
	if len(keys.Chars) > 0 {
		s.insertText(input, keys.Chars)
	}
	if keys.Backspace {
		s.deleteCharBefore(input)
	}
	if keys.Delete {
		s.deleteCharAfter(input)
	}
	if keys.Left && input.CursorPosition > 0 {
		input.CursorPosition--
	}
	if keys.Right && input.CursorPosition < len([]rune(input.Text)) {
		input.CursorPosition++
	}
	if keys.Home {
		input.CursorPosition = 0
	}
	if keys.End {
		input.CursorPosition = len([]rune(input.Text))
	}
}

// insertText 在光标位置插入字符
// 邮箱只接受可见 ASCII 字符，空格与控制字符被过滤
func (s *TextInputSystem) insertText(input *components.TextInputComponent, chars []rune) {
	filtered := make([]rune, 0, len(chars))
	for _, r := range chars {
		if r > ' ' && r < 0x7f {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return
	}

	runes := []rune(input.Text)
	if input.MaxLength > 0 && len(runes)+len(filtered) > input.MaxLength {
		log.Printf("[TextInputSystem] Max length reached (%d)", input.MaxLength)
		return
	}

	pos := min(max(input.CursorPosition, 0), len(runes))
	result := make([]rune, 0, len(runes)+len(filtered))
	result = append(result, runes[:pos]...)
	result = append(result, filtered...)
	result = append(result, runes[pos:]...)

	input.Text = string(result)
	input.CursorPosition = pos + len(filtered)
}

// deleteCharBefore 删除光标前的字符（退格）
func (s *TextInputSystem) deleteCharBefore(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	if input.CursorPosition <= 0 || input.CursorPosition > len(runes) {
		return
	}
	input.Text = string(append(runes[:input.CursorPosition-1:input.CursorPosition-1], runes[input.CursorPosition:]...))
	input.CursorPosition--
}

// deleteCharAfter 删除光标后的字符（Delete 键）
func (s *TextInputSystem) deleteCharAfter(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	if input.CursorPosition < 0 || input.CursorPosition >= len(runes) {
		return
	}
	input.Text = string(append(runes[:input.CursorPosition:input.CursorPosition], runes[input.CursorPosition+1:]...))
}
