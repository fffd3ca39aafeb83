package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ValidateEmail 与页面表单一致的宽松校验：包含 "@" 和 "."
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

type registerEmailRequest struct {
	Email string `json:"email"`
}

// RegisterEmail 登记事前预约邮箱
// 邮箱已登记时返回的错误满足 errors.Is(err, ErrAlreadyRegistered)
func (c *Client) RegisterEmail(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	req := registerEmailRequest{Email: strings.TrimSpace(email)}
	if err := c.do(ctx, http.MethodPost, "/api/v1/pre-launch/emails", req, nil, idempotencyHeader()); err != nil {
		return fmt.Errorf("register email: %w", err)
	}
	return nil
}
