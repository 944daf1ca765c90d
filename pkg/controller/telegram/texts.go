package telegram

// Main menu button labels. These double as match keys for incoming text,
// so they must stay identical to what the reply keyboard sends back.
const (
	btnDirectory = "📞 أرقام المستشفى"
	btnSearch    = "🔍 بحث بالاسم"
	btnAbout     = "ℹ️ عن البوت"
	btnHome      = "◀️ رجوع للقائمة"
)

// Texts holds the user-facing strings. Defaults match the hospital
// deployment; a TOML file can override any of them (see cli/config).
type Texts struct {
	Intro     string `toml:"intro"`
	About     string `toml:"about"`
	Broadcast string `toml:"broadcast"`
	Signature string `toml:"signature"`
	AdminLink string `toml:"admin_link"`
}

// DefaultTexts returns the built-in strings with the admin contact filled in
func DefaultTexts(adminLink string) Texts {
	return Texts{
		Intro: "👋 أهلاً بك في بوت أرقام مستشفى الإمام الحسن المجتبى (ع).\n\n" +
			"📌 طريقة الاستخدام:\n" +
			"• " + btnDirectory + ": تصفّح الأقسام كمربعات.\n" +
			"• " + btnSearch + ": اكتب أي جزء من اسم القسم.\n" +
			"• " + btnAbout + ": معلومات عن البوت.\n\n" +
			"✅ ملاحظة: الاقتراحات/التعديلات يرجى إرسالها إلى: " + adminLink,
		About: "ℹ️ عن البوت\n" +
			"هذا البوت مخصص لعرض أرقام أقسام المستشفى بسرعة عبر البحث أو الأزرار.\n\n" +
			"📩 لمزيد من الاستفسارات أو مقترحات التعديل:\n" + adminLink,
		Broadcast: "🌟 تحية طيبة من فريق مستشفى الإمام الحسن المجتبى (ع)\n\n" +
			"نود معرفة رأيكم لتحسين بوت الأرقام:\n" +
			"هل لديكم أي اقتراحات أو تعديلات تحبون نضيفها؟\n\n" +
			"📩 أرسلوا اقتراحاتكم إلى: " + adminLink,
		Signature: "\n────────────\nSource: CCTV – Yaseen Al-Tamimi",
		AdminLink: adminLink,
	}
}

// Reply strings that never needed configuration
const (
	msgChooseDept     = "اختر القسم من القائمة:"
	msgSearchPrompt   = "✍️ اكتب أي جزء من اسم القسم."
	msgMultipleFound  = "🔎 تم العثور على عدة نتائج، اختر القسم:"
	msgNotFound       = "❌ لم يتم العثور على هذا القسم."
	msgNoDepartments  = "❌ لا توجد سجلات. استخدم /reload بعد التأكد من ملف الإكسل."
	msgBackHome       = "رجعت للقائمة الرئيسية."
	msgUnauthorized   = "⛔️ غير مصرح."
	msgAdminPanel     = "👑 لوحة الإدارة والإحصائيات:"
	msgExportMenu     = "📥 اختر نوع التصدير:"
	msgNoDataYet      = "— لا توجد بيانات كافية بعد —"
	msgInvalidChoice  = "خيار غير صالح."
	msgUnknownChoice  = "خيار غير معروف."
	msgBroadcastCheck = "⚠️ سيتم إرسال رسالة ترحيب/اقتراحات لجميع المستخدمين المسجلين.\nهل تريد المتابعة؟"
)
