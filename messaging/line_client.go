package messaging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

const maxLoggedBody = 2048

// Pusher delivers text messages to a messaging-platform user.
type Pusher interface {
	Push(ctx context.Context, to string, messages ...Message) error
}

type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func TextMessage(text string) Message {
	return Message{Type: "text", Text: text}
}

// StatusError is returned when the Messaging API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("push endpoint returned status %d: %s", e.StatusCode, e.Body)
}

type LineClientConfig struct {
	// Endpoint is the Messaging API base URL, e.g. https://api.line.me.
	Endpoint           string
	ChannelAccessToken string
	Timeout            time.Duration
}

type lineClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *slog.Logger
}

func NewLineClient(cfg LineClientConfig, logger *slog.Logger) (Pusher, error) {
	if cfg.Endpoint == "" || cfg.ChannelAccessToken == "" {
		return nil, fmt.Errorf("invalid LINE client configuration: endpoint and channel access token are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &lineClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		token:      cfg.ChannelAccessToken,
		logger:     logger,
	}
	if _, err := c.api(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid LINE client configuration: %w", err)
	}
	return c, nil
}

// api builds a client per call; WithContext mutates the SDK client in place.
func (c *lineClient) api(ctx context.Context) (*messaging_api.MessagingApiAPI, error) {
	bot, err := messaging_api.NewMessagingApiAPI(c.token,
		messaging_api.WithEndpoint(c.endpoint),
		messaging_api.WithHTTPClient(c.httpClient),
	)
	if err != nil {
		return nil, err
	}
	return bot.WithContext(ctx), nil
}

func (c *lineClient) Push(ctx context.Context, to string, messages ...Message) error {
	bot, err := c.api(ctx)
	if err != nil {
		return fmt.Errorf("failed to build LINE client: %w", err)
	}

	req := &messaging_api.PushMessageRequest{To: to}
	for _, m := range messages {
		req.Messages = append(req.Messages, messaging_api.TextMessage{Text: m.Text})
	}

	res, sent, err := bot.PushMessageWithHttpInfo(req, uuid.NewString())
	if res == nil {
		return fmt.Errorf("failed to send push request: %w", err)
	}
	if err != nil {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxLoggedBody))
		c.logger.Info("LINE push response",
			slog.String("to", to),
			slog.Int("status", res.StatusCode),
			slog.String("body", string(body)),
		)
		if res.StatusCode/100 != 2 {
			return &StatusError{StatusCode: res.StatusCode, Body: string(body)}
		}
		return fmt.Errorf("failed to decode push response: %w", err)
	}

	attrs := []any{slog.String("to", to), slog.Int("status", res.StatusCode)}
	if sent != nil {
		attrs = append(attrs, slog.Int("sent_messages", len(sent.SentMessages)))
	}
	c.logger.Info("LINE push response", attrs...)
	return nil
}
