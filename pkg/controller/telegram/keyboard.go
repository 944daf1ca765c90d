package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/karbala-lab/daleel/pkg/domain/model"
)

// Grid layout, from the deployed bot
const (
	gridCols       = 3
	pageSizeAll    = 24
	pageSizeSearch = 21
)

// mainKeyboard is the persistent reply keyboard
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnDirectory)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSearch)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAbout)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnHome)),
	)
}

// buildGrid lays out department buttons over the given indices, one page at
// a time, with prev/page/next controls when the result spans pages and a
// home row at the bottom. mode is the callback prefix for page flips.
func buildGrid(dir *model.Directory, indices []int, page, pageSize, cols int, mode string) tgbotapi.InlineKeyboardMarkup {
	total := len(indices)
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	if page < 0 {
		page = 0
	}
	if page > pages-1 {
		page = pages - 1
	}

	start := page * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, idx := range indices[start:end] {
		dept, ok := dir.At(idx)
		if !ok {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(dept.Name, fmt.Sprintf("dept:%d", idx)))
		if len(row) == cols {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if pages > 1 {
		var ctrl []tgbotapi.InlineKeyboardButton
		if page > 0 {
			ctrl = append(ctrl, tgbotapi.NewInlineKeyboardButtonData("⬅️ السابق", fmt.Sprintf("%s:%d", mode, page-1)))
		}
		ctrl = append(ctrl, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("صفحة %d/%d", page+1, pages), "noop"))
		if page < pages-1 {
			ctrl = append(ctrl, tgbotapi.NewInlineKeyboardButtonData("التالي ➡️", fmt.Sprintf("%s:%d", mode, page+1)))
		}
		rows = append(rows, ctrl)
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(btnHome, "home"),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// gridAll pages over the whole directory
func gridAll(dir *model.Directory, page int) tgbotapi.InlineKeyboardMarkup {
	indices := make([]int, dir.Len())
	for i := range indices {
		indices[i] = i
	}
	return buildGrid(dir, indices, page, pageSizeAll, gridCols, "allp")
}

// gridSearch pages over a search result
func gridSearch(dir *model.Directory, indices []int, page int) tgbotapi.InlineKeyboardMarkup {
	return buildGrid(dir, indices, page, pageSizeSearch, gridCols, "srchp")
}

// adminMenu is the admin panel root
func adminMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📊 ملخص شامل (من البداية)", "adm:summary")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🏆 Top 10 أقسام (من البداية)", "adm:top_depts")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("👥 عدد المستخدمين + قائمة المستخدمين", "adm:users_list:0")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("👥 Top 15 مستخدم استخداماً", "adm:top_users")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🕒 آخر 25 مستخدم نشط", "adm:recent25")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📥 تصدير التقارير", "adm:export_menu")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📣 إرسال رسالة ترحيب/اقتراحات للجميع", "adm:broadcast_confirm")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnHome, "home")),
	)
}

// exportMenu lists every report in both formats
func exportMenu() tgbotapi.InlineKeyboardMarkup {
	pair := func(label, kind string) []tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label+" (CSV)", "adm:export:"+kind+":csv"),
			tgbotapi.NewInlineKeyboardButtonData(label+" (XLSX)", "adm:export:"+kind+":xlsx"),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		pair("📄 Summary", "summary"),
		pair("👥 Users All", "users_all"),
		pair("✅ Users Used", "users_used"),
		pair("🏆 Top Depts", "top_depts"),
		pair("👥 Top Users", "top_users"),
		pair("📦 Full Pack", "full"),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ رجوع", "adm:back_admin")),
	)
}

// broadcastConfirmKeyboard asks before a bulk send
func broadcastConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ إرسال الآن", "adm:broadcast_send"),
			tgbotapi.NewInlineKeyboardButtonData("❌ إلغاء", "adm:back_admin"),
		),
	)
}
