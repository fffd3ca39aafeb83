package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIBaseURL 线上 API 地址
const DefaultAPIBaseURL = "https://api.buy-or-not.com"

// RuntimeEnv 从环境变量读取的运行时配置
//
// 命令行参数优先于环境变量，由 main 负责合并
type RuntimeEnv struct {
	APIBaseURL      string `env:"BUYORNOT_API_BASE_URL" envDefault:"https://api.buy-or-not.com"`
	AccessToken     string `env:"BUYORNOT_ACCESS_TOKEN"`
	Verbose         bool   `env:"BUYORNOT_VERBOSE" envDefault:"false"`
	NarrativeConfig string `env:"BUYORNOT_NARRATIVE_CONFIG" envDefault:"data/narrative.yaml"`
}

// LoadRuntimeEnv 解析环境变量
func LoadRuntimeEnv() (RuntimeEnv, error) {
	var cfg RuntimeEnv
	if err := env.Parse(&cfg); err != nil {
		return RuntimeEnv{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	return cfg, nil
}
