package bot_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/analyzer"
	"github.com/jonesrussell/pagepulse/internal/bot"
	"github.com/jonesrussell/pagepulse/internal/logger"
	"github.com/jonesrussell/pagepulse/internal/pagespeed"
	"github.com/jonesrussell/pagepulse/internal/schedule"
)

const (
	testChatID = int64(42)
	testURL    = "https://example.com/page_with_underscores"
)

var errAnalysis = errors.New("analysis failed")

// fakeAPI records every Chattable the bot sends.
type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{
		MessageID: len(f.sent),
		Chat:      &tgbotapi.Chat{ID: testChatID},
	}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// messageTexts extracts the text of every plain message sent.
func (f *fakeAPI) messageTexts() []string {
	var texts []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

// documents extracts every document sent.
func (f *fakeAPI) documents() []tgbotapi.DocumentConfig {
	var docs []tgbotapi.DocumentConfig
	for _, c := range f.sent {
		if doc, ok := c.(tgbotapi.DocumentConfig); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// edits extracts every message edit sent.
func (f *fakeAPI) edits() []tgbotapi.EditMessageTextConfig {
	var edits []tgbotapi.EditMessageTextConfig
	for _, c := range f.sent {
		if edit, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			edits = append(edits, edit)
		}
	}
	return edits
}

// fakeAnalyzer returns canned results and records the analyzed URLs.
type fakeAnalyzer struct {
	err        error
	calledURLs []string
	strategies []pagespeed.Strategy
}

func (f *fakeAnalyzer) Analyze(
	_ context.Context,
	pageURL string,
	strategy pagespeed.Strategy,
) (*analysis.Result, error) {
	f.calledURLs = append(f.calledURLs, pageURL)
	f.strategies = append(f.strategies, strategy)
	if f.err != nil {
		return nil, f.err
	}
	return &analysis.Result{
		URL:      pageURL,
		Strategy: string(strategy),
		Score:    75,
		Metrics: []analysis.Metric{
			{ID: "first-contentful-paint", Name: "Перший вміст", Value: "1,2 с", Rating: analysis.RatingGood},
		},
	}, nil
}

func (f *fakeAnalyzer) AnalyzeFull(ctx context.Context, pageURL string) *analyzer.FullResult {
	mobile, _ := f.Analyze(ctx, pageURL, pagespeed.StrategyMobile)
	return &analyzer.FullResult{URL: pageURL, Mobile: mobile}
}

// fakeReports returns canned PDF bytes.
type fakeReports struct {
	err error
}

func (f *fakeReports) Build(string, *analysis.Result, *analysis.Result) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

// fakeScheduler records schedule calls.
type fakeScheduler struct {
	checks    []schedule.Check
	cancelErr error
}

func (f *fakeScheduler) Schedule(owner int64, url, spec string) (schedule.Check, error) {
	check := schedule.Check{ID: "check-1", Owner: owner, URL: url, Spec: spec}
	f.checks = append(f.checks, check)
	return check, nil
}

func (f *fakeScheduler) Cancel(owner int64, id string) error {
	return f.cancelErr
}

func (f *fakeScheduler) List(owner int64) []schedule.Check {
	return f.checks
}

type fixture struct {
	api       *fakeAPI
	analyzer  *fakeAnalyzer
	scheduler *fakeScheduler
	bot       *bot.Bot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := &fakeAPI{}
	an := &fakeAnalyzer{}
	scheduler := &fakeScheduler{}
	b := bot.New(api, an, &fakeReports{}, scheduler, logger.NewNoOp())

	return &fixture{api: api, analyzer: an, scheduler: scheduler, bot: b}
}

// textMessage builds a plain chat message update.
func textMessage(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: testChatID},
		},
	}
}

// commandMessage builds a slash command update.
func commandMessage(text string) tgbotapi.Update {
	command := strings.Fields(text)[0]
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: testChatID},
			From: &tgbotapi.User{FirstName: "Тест"},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(command)},
			},
		},
	}
}

func TestHandleUpdate_StartCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), commandMessage("/start"))

	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "Привіт, Тест!")
}

func TestHandleUpdate_HelpCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), commandMessage("/help"))

	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "/schedule")
}

func TestHandleUpdate_UnknownCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), commandMessage("/bogus"))

	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "Невідома команда")
}

func TestHandleUpdate_InvalidURL(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), textMessage("example dot com"))

	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "не схоже на правильний URL")
	require.Empty(t, f.analyzer.calledURLs)
}

func TestHandleUpdate_AnalyzeMessage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), textMessage(testURL))

	// Both device profiles are analyzed.
	require.Equal(t, []string{testURL, testURL}, f.analyzer.calledURLs)
	require.Equal(t,
		[]pagespeed.Strategy{pagespeed.StrategyMobile, pagespeed.StrategyDesktop},
		f.analyzer.strategies)

	// The PDF report is delivered as a document with the score caption.
	docs := f.api.documents()
	require.Len(t, docs, 1)
	require.Contains(t, docs[0].Caption, "75/100")

	file, ok := docs[0].File.(tgbotapi.FileBytes)
	require.True(t, ok)
	require.True(t, strings.HasSuffix(file.Name, ".pdf"))

	// The status message is deleted after delivery.
	require.NotEmpty(t, f.api.requests)
}

func TestHandleUpdate_AnalyzeFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.analyzer.err = errAnalysis

	f.bot.HandleUpdate(context.Background(), textMessage(testURL))

	require.Empty(t, f.api.documents())

	edits := f.api.edits()
	require.Len(t, edits, 1)
	require.Contains(t, edits[0].Text, "Сталася помилка")
}

func TestHandleUpdate_DetailCallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: "detail_mobile_" + testURL,
			Message: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: testChatID},
			},
		},
	}

	f.bot.HandleUpdate(context.Background(), update)

	// Underscores inside the URL survive the payload split.
	require.Equal(t, []string{testURL}, f.analyzer.calledURLs)
	require.Equal(t, []pagespeed.Strategy{pagespeed.StrategyMobile}, f.analyzer.strategies)

	edits := f.api.edits()
	require.NotEmpty(t, edits)
	last := edits[len(edits)-1]
	require.Contains(t, last.Text, "Детальний аналіз")
	require.Contains(t, last.Text, "75/100")
}

func TestHandleUpdate_MalformedCallback(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: "bogus",
			Message: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: testChatID},
			},
		},
	}

	f.bot.HandleUpdate(context.Background(), update)

	require.Empty(t, f.analyzer.calledURLs)
	edits := f.api.edits()
	require.Len(t, edits, 1)
	require.Contains(t, edits[0].Text, "неправильний формат")
}

func TestHandleUpdate_CallbackWithoutMessage(t *testing.T) {
	t.Parallel()

	// Telegram omits the message on callbacks for reports older than
	// 48 hours and for inline-mode sends; the press must be dropped,
	// not panic the update loop.
	f := newFixture(t)
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: "detail_mobile_" + testURL,
		},
	}

	require.NotPanics(t, func() {
		f.bot.HandleUpdate(context.Background(), update)
	})

	require.Empty(t, f.analyzer.calledURLs)
	require.Empty(t, f.api.edits())
}

func TestHandleUpdate_FullCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), commandMessage("/full "+testURL))

	edits := f.api.edits()
	require.Len(t, edits, 1)
	require.Contains(t, edits[0].Text, "Повний аналіз")
	require.Contains(t, edits[0].Text, "Мобільний: 75/100")
}

func TestHandleUpdate_ScheduleCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), commandMessage("/schedule https://example.com 0 8 * * *"))

	require.Len(t, f.scheduler.checks, 1)
	require.Equal(t, testChatID, f.scheduler.checks[0].Owner)
	require.Equal(t, "https://example.com", f.scheduler.checks[0].URL)
	require.Equal(t, "0 8 * * *", f.scheduler.checks[0].Spec)

	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "Перевірку заплановано")
}

func TestHandleUpdate_ScheduleUsage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), commandMessage("/schedule"))

	require.Empty(t, f.scheduler.checks)
	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "Використання: /schedule")
}

func TestHandleUpdate_ScheduledEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bot.HandleUpdate(context.Background(), commandMessage("/scheduled"))

	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "немає запланованих")
}

func TestHandleUpdate_UnscheduleNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.scheduler.cancelErr = schedule.ErrCheckNotFound

	f.bot.HandleUpdate(context.Background(), commandMessage("/unschedule missing-id"))

	texts := f.api.messageTexts()
	require.Len(t, texts, 1)
	require.Contains(t, texts[0], "не знайдено")
}

func TestRunScheduledCheck(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	check := schedule.Check{ID: "check-1", Owner: testChatID, URL: testURL}

	f.bot.RunScheduledCheck(context.Background(), check)

	require.Equal(t, []string{testURL, testURL}, f.analyzer.calledURLs)
	docs := f.api.documents()
	require.Len(t, docs, 1)
}
