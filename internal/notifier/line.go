package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Replier sends a reply message for an inbound event.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// LineReplier sends replies via the LINE Messaging API.
type LineReplier struct {
	api *messaging_api.MessagingApiAPI
}

// NewLineReplier creates a replier with optional proxy support.
func NewLineReplier(accessToken, proxyURL string) (*LineReplier, error) {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	api, err := messaging_api.NewMessagingApiAPI(accessToken,
		messaging_api.WithHTTPClient(&http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create messaging api client: %w", err)
	}
	return &LineReplier{api: api}, nil
}

// Reply sends text as a single text message bound to replyToken.
func (l *LineReplier) Reply(_ context.Context, replyToken, text string) error {
	_, err := l.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}
