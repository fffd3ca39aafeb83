package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
)

// VoteChoice 投票选项
type VoteChoice string

const (
	ChoiceYes VoteChoice = "YES"
	ChoiceNo  VoteChoice = "NO"
)

// ChoiceFromOption 把界面选项ID（"yes"/"no"）转换为 VoteChoice
func ChoiceFromOption(optionID string) (VoteChoice, error) {
	switch strings.ToLower(optionID) {
	case "yes":
		return ChoiceYes, nil
	case "no":
		return ChoiceNo, nil
	default:
		return "", fmt.Errorf("unknown vote option %q", optionID)
	}
}

// VoteTally 投票后的计数
type VoteTally struct {
	YesCount int `json:"yesCount"`
	NoCount  int `json:"noCount"`
}

// Total 总票数
func (t VoteTally) Total() int {
	return t.YesCount + t.NoCount
}

// Percentages 四舍五入后的百分比；总数为 0 时均为 0
func (t VoteTally) Percentages() (yes, no int) {
	total := t.Total()
	if total <= 0 {
		return 0, 0
	}
	yes = int(math.Round(float64(t.YesCount) * 100 / float64(total)))
	no = int(math.Round(float64(t.NoCount) * 100 / float64(total)))
	return yes, no
}

type voteRequest struct {
	Choice VoteChoice `json:"choice"`
}

// SubmitVote 以游客身份对 Feed 投票，返回最新计数
//
// 参数：
//   - feedID: Feed ID
//   - optionID: "yes" 或 "no"
func (c *Client) SubmitVote(ctx context.Context, feedID int64, optionID string) (VoteTally, error) {
	choice, err := ChoiceFromOption(optionID)
	if err != nil {
		return VoteTally{}, err
	}

	var tally VoteTally
	path := fmt.Sprintf("/api/v1/feeds/%d/votes/guest", feedID)
	if err := c.do(ctx, http.MethodPost, path, voteRequest{Choice: choice}, &tally, idempotencyHeader()); err != nil {
		return VoteTally{}, fmt.Errorf("submit vote: %w", err)
	}
	return tally, nil
}
