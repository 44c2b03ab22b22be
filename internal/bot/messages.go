package bot

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/analyzer"
)

// User-facing message catalogue, Ukrainian.
const (
	msgStart = "Привіт, %s! 👋\n\n" +
		"Я бот для аналізу швидкості завантаження веб-сторінок за допомогою Google PageSpeed Insights.\n\n" +
		"🔹 Просто надішліть мені URL веб-сторінки, і я проаналізую її.\n" +
		"🔹 Я створю детальний PDF-звіт з результатами аналізу.\n\n" +
		"Для отримання допомоги введіть /help."

	msgHelp = "📌 *Як користуватися ботом:*\n\n" +
		"1. Просто надішліть мені URL веб-сторінки, яку хочете проаналізувати\n" +
		"2. Дочекайтеся завершення аналізу\n" +
		"3. Отримайте PDF-звіт з результатами\n\n" +
		"📌 *Доступні команди:*\n\n" +
		"/start - Запустити бота\n" +
		"/help - Показати цю довідку\n" +
		"/about - Інформація про бота\n" +
		"/full <url> - Повний аналіз: SEO, доступність, безпека\n" +
		"/schedule <url> <cron> - Регулярна перевірка за розкладом\n" +
		"/scheduled - Список запланованих перевірок\n" +
		"/unschedule <id> - Скасувати заплановану перевірку\n\n" +
		"⚠️ Переконайтеся, що URL містить префікс http:// або https://"

	msgAbout = "🤖 *PagePulse Bot*\n\n" +
		"Цей бот допомагає аналізувати швидкість завантаження веб-сторінок за допомогою Google PageSpeed Insights API.\n\n" +
		"Додатково перевіряються SEO, доступність і безпека сторінки."

	msgAnalysisStart = "🔍 Починаю аналіз URL...\n" +
		"Це може зайняти кілька хвилин. Будь ласка, зачекайте."

	msgAnalysisComplete = "📊 Аналіз завершено. Генерую PDF-звіт..."

	msgInvalidURL = "⚠️ Це не схоже на правильний URL. Будь ласка, перевірте формат і спробуйте ще раз.\n\n" +
		"URL повинен починатися з http:// або https:// та містити домен."

	msgError = "❌ Сталася помилка під час аналізу: %s\n" +
		"Будь ласка, спробуйте ще раз пізніше або перевірте URL."

	msgDetailOptions = "Бажаєте переглянути детальніший аналіз?"

	msgReportCaption = "📑 Звіт аналізу для %s\n\n" +
		"📱 Мобільний: %d/100\n" +
		"🖥️ Десктоп: %d/100"

	msgScheduleUsage = "Використання: /schedule <url> <cron>\n" +
		"Наприклад: /schedule https://example.com 0 8 * * *"

	msgScheduleAdded = "⏰ Перевірку заплановано.\n" +
		"ID: %s\nURL: %s\nРозклад: %s\n\n" +
		"⚠️ Розклад зберігається лише в пам'яті і зникне після перезапуску бота."

	msgScheduleRemoved = "🗑️ Заплановану перевірку %s скасовано."

	msgScheduleNotFound = "❌ Заплановану перевірку з таким ID не знайдено."

	msgNoScheduled = "У вас немає запланованих перевірок."

	msgUnscheduleUsage = "Використання: /unschedule <id>"

	msgUnknownCommand = "Невідома команда. Введіть /help для списку команд."
)

// formatDetail renders the per-device breakdown shown after pressing a
// detail button.
func formatDetail(result *analysis.Result) string {
	deviceName := "комп'ютерів"
	if result.Strategy == "mobile" {
		deviceName = "мобільних пристроїв"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Детальний аналіз для %s*\nURL: %s\n\n", deviceName, result.URL)
	fmt.Fprintf(&b, "*Загальна оцінка:* %d/100\n\n", result.Score)

	if len(result.Metrics) > 0 {
		b.WriteString("*Основні метрики:*\n")
		for _, metric := range result.Metrics {
			fmt.Fprintf(&b, "%s %s: %s (%s)\n",
				analysis.RatingEmoji(metric.Rating), metric.Name, metric.Value, metric.Rating)
		}
	}

	recs := result.Recommendations
	if !recs.Empty() {
		b.WriteString("\n*Рекомендації щодо оптимізації:*\n")
		for _, group := range recs.Groups {
			for _, rec := range group.Recommendations {
				fmt.Fprintf(&b, "• %s\n", rec.Title)
			}
		}
	}

	return b.String()
}

// formatFull renders the aggregate analysis message: scores plus the
// SEO, accessibility, and security findings. Failed sub-checks are
// left out entirely.
func formatFull(full *analyzer.FullResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Повний аналіз*\nURL: %s\n\n", full.URL)

	if full.Mobile != nil {
		fmt.Fprintf(&b, "%s Мобільний: %d/100\n", analysis.ScoreEmoji(full.Mobile.Score), full.Mobile.Score)
	}
	if full.Desktop != nil {
		fmt.Fprintf(&b, "%s Десктоп: %d/100\n", analysis.ScoreEmoji(full.Desktop.Score), full.Desktop.Score)
	}

	if full.SEO != nil {
		writeFindings(&b, "🔎 SEO", full.SEO.Recommendations)
	}
	if full.Accessibility != nil {
		writeFindings(&b, "♿ Доступність", full.Accessibility.Recommendations)
	}
	if full.Security != nil {
		writeFindings(&b, "🔒 Безпека", full.Security.Recommendations)
	}

	return b.String()
}

// writeFindings appends one titled findings block.
func writeFindings(b *strings.Builder, title string, recs []string) {
	fmt.Fprintf(b, "\n*%s*\n", title)
	if len(recs) == 0 {
		b.WriteString("Проблем не знайдено ✅\n")
		return
	}
	for _, rec := range recs {
		fmt.Fprintf(b, "• %s\n", rec)
	}
}
