package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// Service abstracts the Telegram Bot API for handlers and use cases.
// Markup values are tgbotapi keyboard types (reply or inline), or nil.
type Service interface {
	// SendText sends a text message, retrying once on a rate-limit error
	SendText(ctx context.Context, chatID types.ChatID, text string, markup any) error

	// SendDocument uploads a file as a document with a caption
	SendDocument(ctx context.Context, chatID types.ChatID, filename string, data []byte, caption string) error

	// EditText replaces the text and inline keyboard of an existing message
	EditText(ctx context.Context, chatID types.ChatID, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error

	// AnswerCallback acknowledges a callback query so the client stops
	// showing a progress indicator
	AnswerCallback(ctx context.Context, callbackID string) error

	// Updates returns the long-poll update channel
	Updates() tgbotapi.UpdatesChannel

	// Username returns the bot's own username
	Username() string

	// Stop stops the update long-poll loop
	Stop()
}
