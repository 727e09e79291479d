package notifier

import (
	"context"
	"errors"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"StockAdvisor/internal/logger"
	"StockAdvisor/internal/metrics"
)

// TextHandler turns inbound chat text into a reply. ok is false when nothing should be sent.
type TextHandler interface {
	Handle(ctx context.Context, text string) (reply string, ok bool)
}

// WebhookHandler verifies and dispatches LINE webhook callbacks.
type WebhookHandler struct {
	secret  string
	handler TextHandler
	replier Replier // nil when channel credentials are missing
	log     *logger.Logger
}

// NewWebhookHandler creates a new webhook handler. A nil replier disables outbound replies.
func NewWebhookHandler(channelSecret string, handler TextHandler, replier Replier, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		secret:  channelSecret,
		handler: handler,
		replier: replier,
		log:     log.With("component", "line_webhook"),
	}
}

// ServeHTTP implements http.Handler.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cb, err := webhook.ParseRequest(h.secret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			metrics.WebhookRequests.WithLabelValues("invalid_signature").Inc()
			h.log.Warnw("rejected webhook with invalid signature", "remote", r.RemoteAddr)
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}
		metrics.WebhookRequests.WithLabelValues("bad_request").Inc()
		h.log.Warnw("failed to parse webhook body", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	metrics.WebhookRequests.WithLabelValues("ok").Inc()

	for _, event := range cb.Events {
		e, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		msg, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}
		h.handleText(r.Context(), e.ReplyToken, msg.Text)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *WebhookHandler) handleText(ctx context.Context, replyToken, text string) {
	h.log.Infow("received text message", "text", text)

	reply, ok := h.handler.Handle(ctx, text)
	if !ok {
		h.log.Debugw("no actionable symbols, not replying")
		return
	}
	if h.replier == nil {
		h.log.Warnw("LINE credentials missing, dropping reply", "length", len([]rune(reply)))
		return
	}
	if err := h.replier.Reply(ctx, replyToken, reply); err != nil {
		h.log.Errorw("send reply failed", "error", err)
	}
}
