// Package main submits a pre-launch registration email to the Buy or Not API.
//
// Usage:
//
//	go run ./cmd/preregister --email me@example.com [flags]
//
// Flags:
//
//	--email <address>   Email to register (required)
//	--api <url>         API base URL (defaults to BUYORNOT_API_BASE_URL)
//	--timeout <dur>     Request timeout (default: 10s)
//	--verbose           Enable verbose logging
//
// Exit codes: 0 registered, 1 failed, 2 invalid input, 3 already registered.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/buyornot/pkg/api"
	"github.com/decker502/buyornot/pkg/app"
	"github.com/decker502/buyornot/pkg/config"
	"github.com/decker502/buyornot/pkg/game"
)

var (
	emailFlag   = flag.String("email", "", "Email to register")
	apiFlag     = flag.String("api", "", "API base URL")
	timeoutFlag = flag.Duration("timeout", api.DefaultTimeout, "Request timeout")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// 与页面提示一致的文案
const (
	msgSuccess           = "제출되었어요! 앱 런칭 후 안내드릴게요 :)"
	msgAlreadyRegistered = "이미 신청한 이메일입니다."
	msgFailed            = "오류가 발생했어요. 다시 시도해주세요."
	msgInvalid           = "올바른 이메일을 입력해주세요."
)

// registrar 便于测试替换
type registrar interface {
	RegisterEmail(ctx context.Context, email string) error
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	env, err := config.LoadRuntimeEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	baseURL := env.APIBaseURL
	if *apiFlag != "" {
		baseURL = *apiFlag
	}
	client := api.NewClient(baseURL, api.WithAccessToken(env.AccessToken))

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	code := register(ctx, os.Stdout, client, *emailFlag)
	if code == 0 {
		records := game.NewVoteRecordManager(game.OpenStorage(app.AppName))
		if err := records.MarkRegistered(); err != nil {
			log.Printf("[preregister] Warning: failed to save registration: %v", err)
		}
	}
	os.Exit(code)
}

// register 提交邮箱并输出结果，返回退出码
func register(ctx context.Context, out io.Writer, r registrar, email string) int {
	if err := api.ValidateEmail(email); err != nil {
		fmt.Fprintln(out, msgInvalid)
		return 2
	}

	err := r.RegisterEmail(ctx, email)
	switch {
	case err == nil:
		fmt.Fprintln(out, msgSuccess)
		return 0
	case errors.Is(err, api.ErrAlreadyRegistered):
		fmt.Fprintln(out, msgAlreadyRegistered)
		return 3
	default:
		log.Printf("[preregister] register failed: %v", err)
		fmt.Fprintln(out, msgFailed)
		return 1
	}
}
