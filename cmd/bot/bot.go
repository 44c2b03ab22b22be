// Package bot implements the command that runs the Telegram bot with
// long polling and the recurring check scheduler.
package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/pagepulse/cmd/common"
	"github.com/jonesrussell/pagepulse/internal/bot"
	"github.com/jonesrussell/pagepulse/internal/schedule"
)

const (
	signalChannelBufferSize = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the bot command for running the Telegram bot.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Long: `This command starts the Telegram bot with long polling. The bot
analyzes URLs sent to it, replies with PDF reports and per-device
details, and manages recurring scheduled checks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context())
		},
	}
}

// runBot starts the bot and runs until interrupted.
func runBot(ctx context.Context) error {
	// Get dependencies
	deps, err := cmdcommon.NewDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	tgCfg := deps.Config.Telegram
	if validateErr := tgCfg.Validate(); validateErr != nil {
		return fmt.Errorf("telegram config: %w", validateErr)
	}

	an, err := deps.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(tgCfg.Token)
	if err != nil {
		return fmt.Errorf("failed to create bot api: %w", err)
	}
	api.Debug = tgCfg.Debug

	log := deps.Logger.WithComponent("bot")

	// The scheduler fires checks through the bot, and the bot exposes
	// schedule commands through the scheduler. Late-bind the run
	// function so both can be constructed.
	var b *bot.Bot
	manager := schedule.NewManager(
		schedule.NewMemoryStore(),
		func(runCtx context.Context, check schedule.Check) {
			b.RunScheduledCheck(runCtx, check)
		},
		deps.Logger.WithComponent("schedule"),
	)
	b = bot.New(api, an, deps.NewComposer(), manager, log)

	manager.Start()

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = tgCfg.PollTimeout
	updates := api.GetUpdatesChan(updateCfg)

	log.Info("Bot started", "username", api.Self.UserName)

	// Run until a shutdown signal arrives
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("Shutdown signal received", "signal", sig.String())
		api.StopReceivingUpdates()
		cancel()
	}()

	b.Run(runCtx, updates)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer shutdownCancel()
	manager.Stop(shutdownCtx)

	log.Info("Bot stopped")
	return nil
}
