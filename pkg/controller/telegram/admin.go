package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/usecase"
	"github.com/karbala-lab/daleel/pkg/utils/errutil"
)

// handleAdminCallback routes adm:* callbacks. Every action re-checks the
// admin ID; callback data is forgeable.
func (x *Controller) handleAdminCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, action string) {
	chatID := types.ChatID(cb.Message.Chat.ID)
	if !x.isAdmin(cb.From) {
		x.reply(ctx, chatID, msgUnauthorized, nil)
		return
	}

	switch {
	case action == "summary":
		x.adminSummary(ctx, cb)

	case action == "top_depts":
		x.adminTopDepartments(ctx, cb)

	case strings.HasPrefix(action, "users_list:"):
		page, ok := parsePage(strings.TrimPrefix(action, "users_list:"))
		if !ok {
			return
		}
		x.adminUsersList(ctx, cb, page)

	case action == "top_users":
		x.adminTopUsers(ctx, cb)

	case action == "recent25":
		x.adminRecentUsers(ctx, cb)

	case action == "export_menu":
		markup := exportMenu()
		x.edit(ctx, chatID, cb.Message.MessageID, msgExportMenu, &markup)

	case strings.HasPrefix(action, "export:"):
		x.adminExport(ctx, cb, strings.TrimPrefix(action, "export:"))

	case action == "broadcast_confirm":
		markup := broadcastConfirmKeyboard()
		x.edit(ctx, chatID, cb.Message.MessageID, msgBroadcastCheck, &markup)

	case action == "broadcast_send":
		x.adminBroadcast(ctx, cb)

	case action == "back_admin":
		markup := adminMenu()
		x.edit(ctx, chatID, cb.Message.MessageID, msgAdminPanel, &markup)

	default:
		x.reply(ctx, chatID, msgUnknownChoice, nil)
	}
}

// editPanel replaces the panel message, keeping the admin menu attached so
// the admin can keep navigating
func (x *Controller) editPanel(ctx context.Context, cb *tgbotapi.CallbackQuery, text string) {
	markup := adminMenu()
	x.edit(ctx, types.ChatID(cb.Message.Chat.ID), cb.Message.MessageID, text, &markup)
}

func (x *Controller) adminSummary(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	summary, err := x.uc.Stats.Summary(ctx, types.AllTime)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to build admin summary")
		x.reply(ctx, chatID, "❌ تعذر بناء الملخص.", nil)
		return
	}

	lastActivity := "—"
	if summary.HasActivity {
		lastActivity = x.uc.FormatTime(summary.LastActivity)
	}

	var b strings.Builder
	b.WriteString("📊 ملخص شامل (من البداية)\n\n")
	fmt.Fprintf(&b, "👥 إجمالي المستخدمين: %d\n", summary.TotalUsers)
	fmt.Fprintf(&b, "🕒 آخر نشاط: %s\n", lastActivity)

	b.WriteString("\n🏆 أكثر الأقسام طلباً:\n")
	b.WriteString(renderDeptRanking(summary.TopDepartments))

	b.WriteString("\n👥 أكثر المستخدمين استخداماً:\n")
	b.WriteString(renderUserRanking(summary.TopUsers))

	x.editPanel(ctx, cb, b.String())
}

func (x *Controller) adminTopDepartments(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	rows, err := x.uc.Stats.TopDepartments(ctx, types.AllTime, usecase.TopDepartmentsLimit)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to rank departments")
		x.reply(ctx, chatID, "❌ تعذر بناء التقرير.", nil)
		return
	}

	text := fmt.Sprintf("🏆 Top %d أقسام (من البداية):\n\n%s",
		usecase.TopDepartmentsLimit, renderDeptRanking(rows))
	x.editPanel(ctx, cb, text)
}

func (x *Controller) adminUsersList(ctx context.Context, cb *tgbotapi.CallbackQuery, page int) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	total, err := x.uc.Stats.TotalUsers(ctx, types.AllTime)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to count users")
		x.reply(ctx, chatID, "❌ تعذر بناء التقرير.", nil)
		return
	}

	pages := int((total + usecase.UsersPageSize - 1) / usecase.UsersPageSize)
	if pages < 1 {
		pages = 1
	}
	if page > pages-1 {
		page = pages - 1
	}

	users, err := x.uc.Stats.UsersPage(ctx, interfaces.UserOrderFirstSeenDesc,
		page*usecase.UsersPageSize, usecase.UsersPageSize)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to list users")
		x.reply(ctx, chatID, "❌ تعذر بناء التقرير.", nil)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 عدد المستخدمين الكلي: %d\n", total)
	fmt.Fprintf(&b, "📄 صفحة %d/%d (الأحدث أولاً)\n\n", page+1, pages)
	if len(users) == 0 {
		b.WriteString(msgNoDataYet)
	}
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s\n🕒 أول ظهور: %s\n",
			page*usecase.UsersPageSize+i+1, u.Label(), x.uc.FormatTime(u.FirstSeen))
	}

	markup := usersListKeyboard(page, pages)
	x.edit(ctx, chatID, cb.Message.MessageID, b.String(), &markup)
}

func (x *Controller) adminTopUsers(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	rows, err := x.uc.Stats.TopUsers(ctx, types.AllTime, usecase.TopUsersLimit)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to rank users")
		x.reply(ctx, chatID, "❌ تعذر بناء التقرير.", nil)
		return
	}

	text := fmt.Sprintf("👥 Top %d مستخدم استخداماً (من البداية):\n\n%s",
		usecase.TopUsersLimit, renderUserRanking(rows))
	x.editPanel(ctx, cb, text)
}

func (x *Controller) adminRecentUsers(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	rows, err := x.uc.Stats.RecentUsers(ctx, types.AllTime, usecase.RecentUsersLimit)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to list recent users")
		x.reply(ctx, chatID, "❌ تعذر بناء التقرير.", nil)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🕒 آخر %d مستخدم نشط:\n\n", usecase.RecentUsersLimit)
	if len(rows) == 0 {
		b.WriteString(msgNoDataYet)
	}
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. %s\n🕒 آخر نشاط: %s\n",
			i+1, usageLabel(row.Name, row.Handle, row.UserID), x.uc.FormatTime(row.LastUsed))
	}

	x.editPanel(ctx, cb, b.String())
}

// adminExport builds the requested report and uploads it as a document
func (x *Controller) adminExport(ctx context.Context, cb *tgbotapi.CallbackQuery, rest string) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		x.reply(ctx, chatID, msgInvalidChoice, nil)
		return
	}
	kind, err := usecase.ParseExportKind(parts[0])
	if err != nil {
		x.reply(ctx, chatID, msgInvalidChoice, nil)
		return
	}
	format, err := usecase.ParseExportFormat(parts[1])
	if err != nil {
		x.reply(ctx, chatID, msgInvalidChoice, nil)
		return
	}

	filename, data, err := x.uc.Export.Build(ctx, kind, format)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to build export")
		x.reply(ctx, chatID, "❌ فشل بناء التقرير.", nil)
		return
	}

	if err := x.tg.SendDocument(ctx, chatID, filename, data, "📥 "+filename); err != nil {
		_ = errutil.Handle(ctx, err, "failed to upload export")
		x.reply(ctx, chatID, "❌ فشل إرسال الملف.", nil)
	}
}

func (x *Controller) adminBroadcast(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := types.ChatID(cb.Message.Chat.ID)

	x.edit(ctx, chatID, cb.Message.MessageID, "📣 جارٍ الإرسال للجميع...", nil)

	result, err := x.uc.Broadcast.Run(ctx, x.texts.Broadcast+x.texts.Signature)
	if err != nil {
		_ = errutil.Handle(ctx, err, "broadcast failed")
		x.reply(ctx, chatID, "❌ فشل الإرسال الجماعي.", nil)
		return
	}

	x.track(ctx, cb.From, chatID, types.EventKindBroadcast, "", "",
		fmt.Sprintf("sent=%d failed=%d", result.Sent, result.Failed))
	markup := adminMenu()
	x.reply(ctx, chatID,
		fmt.Sprintf("✅ تم الإرسال.\n📤 نجح: %d\n⚠️ فشل: %d", result.Sent, result.Failed), &markup)
}

// usersListKeyboard pages the user listing 50 at a time
func usersListKeyboard(page, pages int) tgbotapi.InlineKeyboardMarkup {
	var ctrl []tgbotapi.InlineKeyboardButton
	if page > 0 {
		ctrl = append(ctrl, tgbotapi.NewInlineKeyboardButtonData("⬅️ السابق", "adm:users_list:"+strconv.Itoa(page-1)))
	}
	ctrl = append(ctrl, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("صفحة %d/%d", page+1, pages), "noop"))
	if page < pages-1 {
		ctrl = append(ctrl, tgbotapi.NewInlineKeyboardButtonData("التالي ➡️", "adm:users_list:"+strconv.Itoa(page+1)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		ctrl,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ رجوع", "adm:back_admin")),
	)
}

func renderDeptRanking(rows []model.DepartmentCount) string {
	if len(rows) == 0 {
		return msgNoDataYet + "\n"
	}
	var b strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. %s — %d\n", i+1, row.Department, row.Count)
	}
	return b.String()
}

func renderUserRanking(rows []model.UserUsage) string {
	if len(rows) == 0 {
		return msgNoDataYet + "\n"
	}
	var b strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. %s — %d\n", i+1, usageLabel(row.Name, row.Handle, row.UserID), row.Count)
	}
	return b.String()
}

// usageLabel mirrors model.User.Label for aggregate rows
func usageLabel(name, handle string, id types.UserID) string {
	if name != "" {
		return name
	}
	if handle != "" {
		return "@" + handle
	}
	return id.String()
}
