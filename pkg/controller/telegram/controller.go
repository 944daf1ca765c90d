package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/service/directory"
	tgsvc "github.com/karbala-lab/daleel/pkg/service/telegram"
	"github.com/karbala-lab/daleel/pkg/usecase"
	"github.com/karbala-lab/daleel/pkg/utils/async"
	"github.com/karbala-lab/daleel/pkg/utils/errutil"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
)

// Controller drives the bot: it consumes the long-poll update stream and
// routes commands, menu buttons, free text and callback queries to the use
// cases. Updates are handled strictly one at a time.
type Controller struct {
	uc       *usecase.UseCases
	tg       tgsvc.Service
	dir      *directory.Service
	adminID  types.UserID
	texts    Texts
	sessions *sessionStore
}

func New(uc *usecase.UseCases, tg tgsvc.Service, dir *directory.Service, adminID types.UserID, texts Texts) *Controller {
	return &Controller{
		uc:       uc,
		tg:       tg,
		dir:      dir,
		adminID:  adminID,
		texts:    texts,
		sessions: newSessionStore(),
	}
}

// Run consumes updates until the context is cancelled or the update channel
// closes
func (x *Controller) Run(ctx context.Context) error {
	logging.From(ctx).Info("controller started", "bot", x.tg.Username())

	updates := x.tg.Updates()
	for {
		select {
		case <-ctx.Done():
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			x.handleUpdate(ctx, update)
		}
	}
}

func (x *Controller) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("panic in update handler", "panic", r)
		}
	}()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		x.handleCommand(ctx, update.Message)

	case update.Message != nil && update.Message.Text != "":
		x.handleText(ctx, update.Message)

	case update.CallbackQuery != nil:
		x.handleCallback(ctx, update.CallbackQuery)
	}
}

// track upserts the acting user, then appends the usage event off the
// handler path. The upsert stays synchronous so the user row exists before
// the event lands.
func (x *Controller) track(ctx context.Context, from *tgbotapi.User, chatID types.ChatID, kind types.EventKind, dept, query, extra string) {
	if from == nil {
		return
	}

	uid := types.UserID(from.ID)
	name := strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName))
	if err := x.uc.Track.Touch(ctx, uid, name, from.UserName); err != nil {
		_ = errutil.Handle(ctx, err, "failed to upsert user")
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return x.uc.Track.Log(ctx, kind, uid, chatID, dept, query, extra)
	})
}

// reply sends a message with the configured signature appended
func (x *Controller) reply(ctx context.Context, chatID types.ChatID, text string, markup any) {
	if err := x.tg.SendText(ctx, chatID, text+x.texts.Signature, markup); err != nil {
		_ = errutil.Handle(ctx, err, "failed to send message")
	}
}

// edit replaces an existing message's text and inline keyboard
func (x *Controller) edit(ctx context.Context, chatID types.ChatID, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	if err := x.tg.EditText(ctx, chatID, messageID, text+x.texts.Signature, markup); err != nil {
		_ = errutil.Handle(ctx, err, "failed to edit message")
	}
}

func phoneOrDash(phone string) string {
	if phone == "" {
		return "—"
	}
	return phone
}
