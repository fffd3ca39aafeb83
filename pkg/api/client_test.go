package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolveURL(t *testing.T) {
	c := NewClient("https://api.example.com//")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"绝对地址原样返回", "http://other.example.com/x", "http://other.example.com/x"},
		{"大写协议", "HTTPS://other.example.com/x", "HTTPS://other.example.com/x"},
		{"斜杠开头", "/api/v1/feeds", "https://api.example.com/api/v1/feeds"},
		{"无斜杠", "api/v1/feeds", "https://api.example.com/api/v1/feeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ResolveURL(tt.path); got != tt.want {
				t.Errorf("ResolveURL(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
	if c.BaseURL() != "https://api.example.com" {
		t.Errorf("BaseURL = %q", c.BaseURL())
	}
}

func TestClientHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		io.WriteString(w, `{"data":{"yesCount":1,"noCount":0}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()), WithAccessToken("tok"))
	if _, err := c.SubmitVote(context.Background(), 1, "yes"); err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}

	if got.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", got.Get("Content-Type"))
	}
	if got.Get("Authorization") != "Bearer tok" {
		t.Errorf("Authorization = %q", got.Get("Authorization"))
	}
	if len(got.Get("Idempotency-Key")) != 36 {
		t.Errorf("Idempotency-Key = %q, want uuid", got.Get("Idempotency-Key"))
	}
}

func TestClientNoTokenNoAuthorization(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `{"data":{"data":[]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	if _, err := c.ListFeeds(context.Background(), 0); err != nil {
		t.Fatalf("ListFeeds: %v", err)
	}
	if auth != "" {
		t.Errorf("Authorization = %q, want empty", auth)
	}
}

func TestClientErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{"带消息", http.StatusBadRequest, `{"errorCode":"FEED_404","message":"no feed"}`, "FEED_404", "no feed"},
		{"缺省消息", http.StatusConflict, `{"errorCode":"X"}`, "X", "Unknown error"},
		{"2xx 也按错误码处理", http.StatusOK, `{"errorCode":"Y","message":"m"}`, "Y", "m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
			_, err := c.SubmitVote(context.Background(), 7, "no")
			apiErr, ok := IsAPIError(err)
			if !ok {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.ErrorCode != tt.wantCode || apiErr.Message != tt.wantMsg || apiErr.Status != tt.status {
				t.Errorf("apiErr = %+v", apiErr)
			}
		})
	}
}

func TestClientHTTPStatusWithoutCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.ListFeeds(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := IsAPIError(err); ok {
		t.Errorf("plain 500 should not be APIError: %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("err = %v, want status in message", err)
	}
}

func TestClientContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	if _, err := c.SubmitVote(ctx, 1, "yes"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestListFeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/feeds" || r.URL.Query().Get("size") != "5" {
			t.Errorf("request = %s", r.URL)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"data": []map[string]any{
					{"feedId": 3, "content": "살까?", "yesCount": 3, "noCount": 1, "feedStatus": "OPEN", "author": map[string]any{"nickname": "kim"}},
					{"feedId": 4, "feedStatus": "CLOSED"},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	feeds, err := c.ListFeeds(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListFeeds: %v", err)
	}
	if len(feeds) != 2 {
		t.Fatalf("len = %d", len(feeds))
	}
	if feeds[0].FeedID != 3 || feeds[0].Author.Nickname != "kim" || !feeds[0].IsVoting() {
		t.Errorf("feeds[0] = %+v", feeds[0])
	}
	if feeds[1].IsVoting() {
		t.Error("closed feed should not be voting")
	}
	if yes, no := feeds[0].Tally().Percentages(); yes != 75 || no != 25 {
		t.Errorf("percentages = %d/%d", yes, no)
	}
}
