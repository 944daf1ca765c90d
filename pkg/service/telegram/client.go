package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// DefaultPollTimeout is the long-poll timeout for update requests
const DefaultPollTimeout = 30 * time.Second

// client implements Service over the Bot API
type client struct {
	api         *tgbotapi.BotAPI
	pollTimeout time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithPollTimeout sets the long-poll timeout
func WithPollTimeout(d time.Duration) Option {
	return func(c *client) {
		c.pollTimeout = d
	}
}

// New creates a Telegram service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Telegram bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Telegram bot client")
	}

	c := &client{
		api:         api,
		pollTimeout: DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// send performs one API call with a single retry after the wait the server
// asked for. Anything beyond one retry is the caller's problem.
func (c *client) send(ctx context.Context, msg tgbotapi.Chattable) error {
	_, err := c.api.Request(msg)
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		wait := time.Duration(apiErr.RetryAfter+1) * time.Second
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "cancelled while waiting for rate limit")
		}
		if _, err := c.api.Request(msg); err != nil {
			return goerr.Wrap(err, "failed to send after rate-limit retry")
		}
		return nil
	}

	return goerr.Wrap(err, "failed to send Telegram request")
}

func (c *client) SendText(ctx context.Context, chatID types.ChatID, text string, markup any) error {
	msg := tgbotapi.NewMessage(int64(chatID), text)
	msg.ReplyMarkup = markup
	return c.send(ctx, msg)
}

func (c *client) SendDocument(ctx context.Context, chatID types.ChatID, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(int64(chatID), tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	doc.Caption = caption
	return c.send(ctx, doc)
}

func (c *client) EditText(ctx context.Context, chatID types.ChatID, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	if markup != nil {
		return c.send(ctx, tgbotapi.NewEditMessageTextAndMarkup(int64(chatID), messageID, text, *markup))
	}
	return c.send(ctx, tgbotapi.NewEditMessageText(int64(chatID), messageID, text))
}

func (c *client) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.send(ctx, tgbotapi.NewCallback(callbackID, ""))
}

func (c *client) Updates() tgbotapi.UpdatesChannel {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(c.pollTimeout / time.Second)
	return c.api.GetUpdatesChan(cfg)
}

func (c *client) Username() string {
	return c.api.Self.UserName
}

func (c *client) Stop() {
	c.api.StopReceivingUpdates()
}
