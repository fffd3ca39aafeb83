package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/decker502/buyornot/pkg/api"
)

type fakeRegistrar struct {
	err   error
	calls int
}

func (f *fakeRegistrar) RegisterEmail(ctx context.Context, email string) error {
	f.calls++
	return f.err
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		err       error
		wantCode  int
		wantMsg   string
		wantCalls int
	}{
		{"成功", "me@example.com", nil, 0, msgSuccess, 1},
		{"重复", "me@example.com", fmt.Errorf("register email: %w", &api.APIError{ErrorCode: api.ErrorCodeAlreadyRegistered}), 3, msgAlreadyRegistered, 1},
		{"其他错误", "me@example.com", errors.New("boom"), 1, msgFailed, 1},
		{"非法邮箱", "nope", nil, 2, msgInvalid, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRegistrar{err: tt.err}
			var out bytes.Buffer
			if code := register(context.Background(), &out, r, tt.email); code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if strings.TrimSpace(out.String()) != tt.wantMsg {
				t.Errorf("output = %q, want %q", out.String(), tt.wantMsg)
			}
			if r.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", r.calls, tt.wantCalls)
			}
		})
	}
}
