package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/decker502/buyornot/pkg/embedded"
)

// TestDefaultNarrativeConfigValid 默认配置必须通过校验
func TestDefaultNarrativeConfigValid(t *testing.T) {
	cfg := DefaultNarrativeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("默认配置校验失败: %v", err)
	}
	if cfg.SceneOne.ScrollDistance != 1200 {
		t.Errorf("ScrollDistance: got %v, want 1200", cfg.SceneOne.ScrollDistance)
	}
	if len(cfg.Texts.SurveyOptions) != 2 {
		t.Errorf("SurveyOptions: got %d, want 2", len(cfg.Texts.SurveyOptions))
	}
}

// TestSceneOneValidate 非法距离在构造时被拒绝
func TestSceneOneValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *SceneOneConfig)
		wantErr error
	}{
		{"零滚动距离", func(c *SceneOneConfig) { c.ScrollDistance = 0 }, ErrInvalidScrollDistance},
		{"负滚动距离", func(c *SceneOneConfig) { c.ScrollDistance = -10 }, ErrInvalidScrollDistance},
		{"NaN滚动距离", func(c *SceneOneConfig) { c.ScrollDistance = math.NaN() }, ErrInvalidScrollDistance},
		{"无穷滚动距离", func(c *SceneOneConfig) { c.ScrollDistance = math.Inf(1) }, ErrInvalidScrollDistance},
		{"零保持距离", func(c *SceneOneConfig) { c.HoldDistance = 0 }, ErrInvalidHoldDistance},
		{"负保持距离", func(c *SceneOneConfig) { c.HoldDistance = -667 }, ErrInvalidHoldDistance},
		{"窗口倒置", func(c *SceneOneConfig) { c.BubbleBFade.Start = 0.95 }, ErrInvalidWindow},
		{"窗口越界", func(c *SceneOneConfig) { c.TitleFade.End = 1.2 }, ErrInvalidWindow},
		{"合法", func(c *SceneOneConfig) {}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultSceneOneConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSceneOneValidateReportsFirstWindow 多个窗口非法时稳定报告第一个
func TestSceneOneValidateReportsFirstWindow(t *testing.T) {
	c := DefaultSceneOneConfig()
	c.TitleFade.End = 1.2
	c.HintFade.Start = -0.1
	c.BubbleAFade.Start = 0.9
	c.BubbleBFade.End = 2

	for i := 0; i < 20; i++ {
		err := c.Validate()
		if !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("got %v, want ErrInvalidWindow", err)
		}
		if !strings.Contains(err.Error(), "titleFade") {
			t.Fatalf("第 %d 次校验报告了 %q, want titleFade", i+1, err)
		}
	}
}

// TestPhaseTimingsValidate 测试时长与推进方式校验
func TestPhaseTimingsValidate(t *testing.T) {
	p := DefaultPhaseTimings()
	p.ThanksFadeOutMs = -1
	if err := p.Validate(); !errors.Is(err, ErrInvalidTiming) {
		t.Errorf("负时长: got %v, want ErrInvalidTiming", err)
	}

	p = DefaultPhaseTimings()
	p.ThanksHoldAdvance = "scroll"
	if err := p.Validate(); !errors.Is(err, ErrInvalidAdvanceMode) {
		t.Errorf("未知推进方式: got %v, want ErrInvalidAdvanceMode", err)
	}

	p = DefaultPhaseTimings()
	p.ThanksHoldAdvance = AdvanceByAnimation
	if err := p.Validate(); err != nil {
		t.Errorf("animation 推进方式应合法: %v", err)
	}
}

// TestPhaseTimingsDurations 毫秒到 Duration 的转换顺序为 T1..T6
func TestPhaseTimingsDurations(t *testing.T) {
	p := PhaseTimings{
		VotePendingWaitMs: 1, WhiteoutMs: 2, ThanksHoldMs: 3,
		ThanksFadeOutMs: 4, NextSceneFadeInMs: 5, PromptFadeOutMs: 6,
	}
	d := p.Durations()
	for i := range d {
		if want := time.Duration(i+1) * time.Millisecond; d[i] != want {
			t.Errorf("T%d: got %v, want %v", i+1, d[i], want)
		}
	}
}

// TestParseNarrativeConfig 测试 YAML 解析与默认值合并
func TestParseNarrativeConfig(t *testing.T) {
	data := []byte(`
sceneOne:
  scrollDistance: 900
timings:
  votePendingWaitMs: 500
  thanksHoldAdvance: animation
texts:
  thanks: "thanks!"
`)
	cfg, err := ParseNarrativeConfig(data)
	if err != nil {
		t.Fatalf("ParseNarrativeConfig() error: %v", err)
	}
	if cfg.SceneOne.ScrollDistance != 900 {
		t.Errorf("ScrollDistance: got %v, want 900", cfg.SceneOne.ScrollDistance)
	}
	if cfg.SceneOne.HoldDistance != 667 {
		t.Errorf("HoldDistance 应保留默认值 667, got %v", cfg.SceneOne.HoldDistance)
	}
	if cfg.Timings.VotePendingWaitMs != 500 || cfg.Timings.WhiteoutMs != 1400 {
		t.Errorf("Timings 合并错误: %+v", cfg.Timings)
	}
	if cfg.Timings.ThanksHoldAdvance != AdvanceByAnimation {
		t.Errorf("ThanksHoldAdvance: got %q", cfg.Timings.ThanksHoldAdvance)
	}
	if cfg.Texts.Thanks != "thanks!" {
		t.Errorf("Texts.Thanks: got %q", cfg.Texts.Thanks)
	}
}

// TestParseNarrativeConfigRejectsInvalid 非法配置快速失败
func TestParseNarrativeConfigRejectsInvalid(t *testing.T) {
	_, err := ParseNarrativeConfig([]byte("sceneOne:\n  holdDistance: 0\n"))
	if !errors.Is(err, ErrInvalidHoldDistance) {
		t.Fatalf("got %v, want ErrInvalidHoldDistance", err)
	}

	if _, err := ParseNarrativeConfig([]byte("sceneOne: [")); err == nil {
		t.Fatal("语法错误的 YAML 应返回错误")
	}
}

// TestLoadNarrativeConfig 嵌入资源优先，其次文件系统
func TestLoadNarrativeConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/narrative.yaml": {Data: []byte("timings:\n  whiteoutMs: 900\n")},
	})
	defer embedded.Init(nil)

	cfg, err := LoadNarrativeConfig("data/narrative.yaml")
	if err != nil {
		t.Fatalf("LoadNarrativeConfig(embedded) error: %v", err)
	}
	if cfg.Timings.WhiteoutMs != 900 {
		t.Errorf("WhiteoutMs: got %d, want 900", cfg.Timings.WhiteoutMs)
	}

	path := filepath.Join(t.TempDir(), "narrative.yaml")
	if err := os.WriteFile(path, []byte("timings:\n  thanksHoldMs: 1000\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err = LoadNarrativeConfig(path)
	if err != nil {
		t.Fatalf("LoadNarrativeConfig(file) error: %v", err)
	}
	if cfg.Timings.ThanksHoldMs != 1000 {
		t.Errorf("ThanksHoldMs: got %d, want 1000", cfg.Timings.ThanksHoldMs)
	}

	if cfg, err := LoadNarrativeConfig(""); err != nil || cfg.Timings != DefaultPhaseTimings() {
		t.Errorf("empty path should return defaults, got %v", err)
	}
	if _, err := LoadNarrativeConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
