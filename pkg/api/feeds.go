package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Author Feed 作者
type Author struct {
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
}

// Feed 一条"살까 말까"帖子
type Feed struct {
	FeedID       int64  `json:"feedId"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	Price        int64  `json:"price"`
	FeedStatus   string `json:"feedStatus"`
	YesCount     int    `json:"yesCount"`
	NoCount      int    `json:"noCount"`
	HasVoted     bool   `json:"hasVoted"`
	MyVoteChoice string `json:"myVoteChoice"`
	Author       Author `json:"author"`
}

// IsVoting 帖子是否仍可投票
func (f Feed) IsVoting() bool {
	return f.FeedStatus != "CLOSED"
}

// Tally 帖子的当前计数
func (f Feed) Tally() VoteTally {
	return VoteTally{YesCount: f.YesCount, NoCount: f.NoCount}
}

type feedPage struct {
	Data []Feed `json:"data"`
}

// ListFeeds 获取第一页 Feed
func (c *Client) ListFeeds(ctx context.Context, size int) ([]Feed, error) {
	q := url.Values{}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	path := "/api/v1/feeds"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page feedPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page, nil); err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	return page.Data, nil
}
