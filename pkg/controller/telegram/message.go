package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/utils/errutil"
)

func (x *Controller) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := types.ChatID(msg.Chat.ID)

	switch msg.Command() {
	case "start":
		x.track(ctx, msg.From, chatID, types.EventKindStart, "", "", "")
		x.reply(ctx, chatID, x.texts.Intro, mainKeyboard())

	case "about":
		x.track(ctx, msg.From, chatID, types.EventKindAbout, "", "", "")
		x.reply(ctx, chatID, x.texts.About, nil)

	case "reload":
		x.handleReload(ctx, msg)

	case "admin":
		x.handleAdminCommand(ctx, msg)
	}
}

func (x *Controller) handleReload(ctx context.Context, msg *tgbotapi.Message) {
	chatID := types.ChatID(msg.Chat.ID)
	if !x.isAdmin(msg.From) {
		x.reply(ctx, chatID, msgUnauthorized, nil)
		return
	}

	n, err := x.dir.Reload(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, err, "manual directory reload failed")
		x.reply(ctx, chatID, "❌ فشل تحديث القائمة، تأكد من ملف الإكسل.", nil)
		return
	}

	x.track(ctx, msg.From, chatID, types.EventKindReload, "", "", fmt.Sprintf("count=%d", n))
	x.reply(ctx, chatID, fmt.Sprintf("✅ تم تحديث القائمة: %d قسم.", n), nil)
}

func (x *Controller) handleAdminCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := types.ChatID(msg.Chat.ID)
	if !x.isAdmin(msg.From) {
		x.reply(ctx, chatID, msgUnauthorized, nil)
		return
	}

	x.track(ctx, msg.From, chatID, types.EventKindAdminOpen, "", "", "")
	markup := adminMenu()
	x.reply(ctx, chatID, msgAdminPanel, &markup)
}

func (x *Controller) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := types.ChatID(msg.Chat.ID)

	switch strings.TrimSpace(msg.Text) {
	case btnDirectory:
		x.track(ctx, msg.From, chatID, types.EventKindOpenList, "", "", "")
		snapshot := x.uc.Lookup.Snapshot()
		if snapshot.Len() == 0 {
			x.reply(ctx, chatID, msgNoDepartments, nil)
			return
		}
		markup := gridAll(snapshot, 0)
		x.reply(ctx, chatID, msgChooseDept, &markup)

	case btnSearch:
		x.track(ctx, msg.From, chatID, types.EventKindPromptSearch, "", "", "")
		x.reply(ctx, chatID, msgSearchPrompt, nil)

	case btnAbout:
		x.track(ctx, msg.From, chatID, types.EventKindAboutButton, "", "", "")
		x.reply(ctx, chatID, x.texts.About, nil)

	case btnHome:
		x.track(ctx, msg.From, chatID, types.EventKindBackHome, "", "", "")
		x.reply(ctx, chatID, x.texts.Intro, mainKeyboard())

	default:
		x.handleSearch(ctx, msg)
	}
}

// handleSearch runs the free-text lookup: zero hits get an apology, one hit
// answers directly, several hits open a pick-one menu pinned to the snapshot
// the search ran against.
func (x *Controller) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	chatID := types.ChatID(msg.Chat.ID)
	query := strings.TrimSpace(msg.Text)
	if query == "" {
		return
	}

	res := x.uc.Lookup.Search(query)
	x.track(ctx, msg.From, chatID, types.EventKindSearchText, "", query,
		fmt.Sprintf("matches=%d", len(res.Indices)))

	switch len(res.Indices) {
	case 0:
		x.track(ctx, msg.From, chatID, types.EventKindNotFound, "", query, "")
		x.reply(ctx, chatID, msgNotFound, nil)

	case 1:
		dept, ok := res.Snapshot.At(res.Indices[0])
		if !ok {
			x.reply(ctx, chatID, msgNotFound, nil)
			return
		}
		x.track(ctx, msg.From, chatID, types.EventKindSearchHit, dept.Name, query, "")
		x.reply(ctx, chatID, deptLine(dept), nil)

	default:
		if msg.From != nil {
			x.sessions.put(types.UserID(msg.From.ID), res)
		}
		markup := gridSearch(res.Snapshot, res.Indices, 0)
		x.reply(ctx, chatID, msgMultipleFound, &markup)
	}
}

func deptLine(dept model.Department) string {
	return fmt.Sprintf("✅ %s\n📞 الرقم: %s", dept.Name, phoneOrDash(dept.Phone))
}

func (x *Controller) isAdmin(from *tgbotapi.User) bool {
	return from != nil && x.adminID != 0 && types.UserID(from.ID) == x.adminID
}
