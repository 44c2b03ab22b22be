// Package bot implements the Telegram chat front-end: command, message,
// and button handlers plus delivery of generated reports.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/analyzer"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/schedule"
	"github.com/jonesrussell/pagepulse/internal/urlutil"
)

// callbackParts is the number of segments in a detail callback payload.
const callbackParts = 3

// Analyzer runs analyses against a target URL.
type Analyzer interface {
	Analyze(ctx context.Context, pageURL string, strategy pagespeed.Strategy) (*analysis.Result, error)
	AnalyzeFull(ctx context.Context, pageURL string) *analyzer.FullResult
}

// ReportBuilder composes PDF report bytes from device results.
type ReportBuilder interface {
	Build(url string, mobile, desktop *analysis.Result) ([]byte, error)
}

// Scheduler manages recurring checks for chat owners.
type Scheduler interface {
	Schedule(owner int64, url, spec string) (schedule.Check, error)
	Cancel(owner int64, id string) error
	List(owner int64) []schedule.Check
}

// TelegramAPI is the slice of the Bot API client the handlers use.
// *tgbotapi.BotAPI satisfies it; tests substitute a fake.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Logger provides structured logging for the bot.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Bot handles Telegram updates and delivers analysis results.
type Bot struct {
	api       TelegramAPI
	analyzer  Analyzer
	reports   ReportBuilder
	scheduler Scheduler
	log       Logger
}

// New creates a Bot.
func New(api TelegramAPI, an Analyzer, reports ReportBuilder, scheduler Scheduler, log Logger) *Bot {
	return &Bot{
		api:       api,
		analyzer:  an,
		reports:   reports,
		scheduler: scheduler,
		log:       log,
	}
}

// Run consumes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	b.log.Info("Bot started")

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				b.log.Info("Updates channel closed")
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update to the matching handler. A handler
// failure is logged and reported to the user, never fatal to the loop.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message == nil:
		// Updates without a message or callback are ignored.
	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	default:
		b.handleAnalyzeMessage(ctx, update.Message)
	}
}

// handleCommand dispatches slash commands.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		name := ""
		if msg.From != nil {
			name = msg.From.FirstName
		}
		b.reply(msg.Chat.ID, fmt.Sprintf(msgStart, name), "")
	case "help":
		b.reply(msg.Chat.ID, msgHelp, tgbotapi.ModeMarkdown)
	case "about":
		b.reply(msg.Chat.ID, msgAbout, tgbotapi.ModeMarkdown)
	case "full":
		b.handleFull(ctx, msg)
	case "schedule":
		b.handleSchedule(msg)
	case "scheduled":
		b.handleScheduled(msg)
	case "unschedule":
		b.handleUnschedule(msg)
	default:
		b.reply(msg.Chat.ID, msgUnknownCommand, "")
	}
}

// handleAnalyzeMessage treats a plain message as a URL: validates it,
// analyzes both device profiles, and delivers the PDF report.
func (b *Bot) handleAnalyzeMessage(ctx context.Context, msg *tgbotapi.Message) {
	pageURL := strings.TrimSpace(msg.Text)

	if !urlutil.Validate(pageURL) {
		b.reply(msg.Chat.ID, msgInvalidURL, "")
		return
	}

	status, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, msgAnalysisStart))
	if err != nil {
		b.log.Error("Failed to send status message", "error", err)
		return
	}

	mobile, err := b.analyzer.Analyze(ctx, pageURL, pagespeed.StrategyMobile)
	if err != nil {
		b.editStatus(msg.Chat.ID, status.MessageID, fmt.Sprintf(msgError, err))
		return
	}

	desktop, err := b.analyzer.Analyze(ctx, pageURL, pagespeed.StrategyDesktop)
	if err != nil {
		b.editStatus(msg.Chat.ID, status.MessageID, fmt.Sprintf(msgError, err))
		return
	}

	b.editStatus(msg.Chat.ID, status.MessageID, msgAnalysisComplete)

	if !b.sendReport(msg.Chat.ID, pageURL, mobile, desktop) {
		b.editStatus(msg.Chat.ID, status.MessageID, fmt.Sprintf(msgError, "не вдалося створити звіт"))
		return
	}

	// The status message has done its job.
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, status.MessageID)); err != nil {
		b.log.Warn("Failed to delete status message", "error", err)
	}

	b.sendDetailButtons(msg.Chat.ID, pageURL)
}

// sendReport builds the PDF and delivers it as a document with the
// score caption. It reports whether delivery succeeded.
func (b *Bot) sendReport(chatID int64, pageURL string, mobile, desktop *analysis.Result) bool {
	pdf, err := b.reports.Build(pageURL, mobile, desktop)
	if err != nil {
		b.log.Error("Failed to build report", "url", pageURL, "error", err)
		return false
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  urlutil.ReportFilename(pageURL, time.Now()),
		Bytes: pdf,
	})
	doc.Caption = fmt.Sprintf(msgReportCaption, pageURL, mobile.Score, desktop.Score)

	if _, err := b.api.Send(doc); err != nil {
		b.log.Error("Failed to send report document", "url", pageURL, "error", err)
		return false
	}

	return true
}

// sendDetailButtons offers the per-device detail views.
func (b *Bot) sendDetailButtons(chatID int64, pageURL string) {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"📱 Детальний аналіз для мобільних", "detail_mobile_"+pageURL),
			tgbotapi.NewInlineKeyboardButtonData(
				"🖥️ Детальний аналіз для десктопу", "detail_desktop_"+pageURL),
		),
	)

	msg := tgbotapi.NewMessage(chatID, msgDetailOptions)
	msg.ReplyMarkup = markup

	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("Failed to send detail buttons", "error", err)
	}
}

// handleCallback answers a detail button press with a formatted
// per-device breakdown.
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Warn("Failed to answer callback", "error", err)
	}

	// Callbacks arrive without a message when the report is older than
	// 48 hours or was sent inline; there is nothing to edit then.
	if query.Message == nil {
		b.log.Warn("Callback without message dropped", "data", query.Data)
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	// Payload format: detail_<device>_<url>; the URL may itself
	// contain underscores.
	parts := strings.SplitN(query.Data, "_", callbackParts)
	if len(parts) < callbackParts || parts[0] != "detail" {
		b.editStatus(chatID, messageID, "❌ Помилка: неправильний формат даних кнопки")
		return
	}

	device := pagespeed.Strategy(parts[1])
	pageURL := parts[2]

	b.editStatus(chatID, messageID, fmt.Sprintf("🔍 Отримую детальний аналіз для %s...", device))

	result, err := b.analyzer.Analyze(ctx, pageURL, device)
	if err != nil {
		b.editStatus(chatID, messageID, fmt.Sprintf("❌ Помилка: %s", err))
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, formatDetail(result))
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("Failed to send detail view", "error", err)
	}
}

// handleFull runs the aggregate analysis and replies with the combined
// SEO, accessibility, and security findings.
func (b *Bot) handleFull(ctx context.Context, msg *tgbotapi.Message) {
	pageURL := strings.TrimSpace(msg.CommandArguments())

	if !urlutil.Validate(pageURL) {
		b.reply(msg.Chat.ID, msgInvalidURL, "")
		return
	}

	status, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, msgAnalysisStart))
	if err != nil {
		b.log.Error("Failed to send status message", "error", err)
		return
	}

	full := b.analyzer.AnalyzeFull(ctx, pageURL)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, status.MessageID, formatFull(full))
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("Failed to send full analysis", "error", err)
	}
}

// handleSchedule registers a recurring check: /schedule <url> <cron>.
func (b *Bot) handleSchedule(msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		b.reply(msg.Chat.ID, msgScheduleUsage, "")
		return
	}

	pageURL := args[0]
	spec := strings.Join(args[1:], " ")

	if !urlutil.Validate(pageURL) {
		b.reply(msg.Chat.ID, msgInvalidURL, "")
		return
	}

	check, err := b.scheduler.Schedule(msg.Chat.ID, pageURL, spec)
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf(msgError, err), "")
		return
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(msgScheduleAdded, check.ID, check.URL, check.Spec), "")
}

// handleScheduled lists the chat's recurring checks.
func (b *Bot) handleScheduled(msg *tgbotapi.Message) {
	checks := b.scheduler.List(msg.Chat.ID)
	if len(checks) == 0 {
		b.reply(msg.Chat.ID, msgNoScheduled, "")
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ Заплановані перевірки:\n\n")
	for _, check := range checks {
		fmt.Fprintf(&sb, "ID: %s\nURL: %s\nРозклад: %s\n\n", check.ID, check.URL, check.Spec)
	}

	b.reply(msg.Chat.ID, sb.String(), "")
}

// handleUnschedule cancels a recurring check: /unschedule <id>.
func (b *Bot) handleUnschedule(msg *tgbotapi.Message) {
	id := strings.TrimSpace(msg.CommandArguments())
	if id == "" {
		b.reply(msg.Chat.ID, msgUnscheduleUsage, "")
		return
	}

	if err := b.scheduler.Cancel(msg.Chat.ID, id); err != nil {
		b.reply(msg.Chat.ID, msgScheduleNotFound, "")
		return
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(msgScheduleRemoved, id), "")
}

// RunScheduledCheck executes one recurring check: re-analyzes the URL
// and delivers a fresh report to the owning chat. Used as the schedule
// manager's run callback.
func (b *Bot) RunScheduledCheck(ctx context.Context, check schedule.Check) {
	mobile, err := b.analyzer.Analyze(ctx, check.URL, pagespeed.StrategyMobile)
	if err != nil {
		b.log.Error("Scheduled check failed", "check_id", check.ID, "error", err)
		b.reply(check.Owner, fmt.Sprintf(msgError, err), "")
		return
	}

	desktop, err := b.analyzer.Analyze(ctx, check.URL, pagespeed.StrategyDesktop)
	if err != nil {
		b.log.Error("Scheduled check failed", "check_id", check.ID, "error", err)
		b.reply(check.Owner, fmt.Sprintf(msgError, err), "")
		return
	}

	b.sendReport(check.Owner, check.URL, mobile, desktop)
}

// editStatus replaces the text of a previously sent status message.
func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.log.Warn("Failed to edit status message", "error", err)
	}
}

// reply sends a plain message, logging delivery failures.
func (b *Bot) reply(chatID int64, text, parseMode string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if parseMode != "" {
		msg.ParseMode = parseMode
	}

	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}
