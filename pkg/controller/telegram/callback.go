package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karbala-lab/daleel/pkg/domain/types"
)

const msgSearchExpired = "⌛️ انتهت صلاحية نتائج البحث، اكتب الاسم من جديد."

func (x *Controller) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client drops its progress indicator even if
	// the handler fails later.
	_ = x.tg.AnswerCallback(ctx, cb.ID)

	if cb.Message == nil {
		return
	}
	chatID := types.ChatID(cb.Message.Chat.ID)
	data := cb.Data

	switch {
	case data == "noop":

	case data == "home":
		x.track(ctx, cb.From, chatID, types.EventKindBackHome, "", "", "")
		x.edit(ctx, chatID, cb.Message.MessageID, msgBackHome, nil)
		x.reply(ctx, chatID, x.texts.Intro, mainKeyboard())

	case strings.HasPrefix(data, "dept:"):
		x.handleDeptSelect(ctx, cb, strings.TrimPrefix(data, "dept:"))

	case strings.HasPrefix(data, "allp:"):
		page, ok := parsePage(strings.TrimPrefix(data, "allp:"))
		if !ok {
			return
		}
		snapshot := x.uc.Lookup.Snapshot()
		markup := gridAll(snapshot, page)
		x.edit(ctx, chatID, cb.Message.MessageID, msgChooseDept, &markup)

	case strings.HasPrefix(data, "srchp:"):
		page, ok := parsePage(strings.TrimPrefix(data, "srchp:"))
		if !ok || cb.From == nil {
			return
		}
		res, found := x.sessions.get(types.UserID(cb.From.ID))
		if !found {
			x.edit(ctx, chatID, cb.Message.MessageID, msgSearchExpired, nil)
			return
		}
		markup := gridSearch(res.Snapshot, res.Indices, page)
		x.edit(ctx, chatID, cb.Message.MessageID, msgMultipleFound, &markup)

	case strings.HasPrefix(data, "adm:"):
		x.handleAdminCallback(ctx, cb, strings.TrimPrefix(data, "adm:"))
	}
}

func (x *Controller) handleDeptSelect(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	idx, err := strconv.Atoi(raw)
	if err != nil {
		x.reply(ctx, chatID, msgInvalidChoice, nil)
		return
	}
	dept, ok := x.uc.Lookup.Resolve(idx)
	if !ok {
		x.reply(ctx, chatID, msgInvalidChoice, nil)
		return
	}

	x.track(ctx, cb.From, chatID, types.EventKindDeptSelect, dept.Name, "", "")
	x.reply(ctx, chatID, deptLine(dept), nil)
}

func parsePage(raw string) (int, bool) {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, false
	}
	return page, true
}
