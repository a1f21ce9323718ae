package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/itsvyle/wordle_bot/config"
	"github.com/itsvyle/wordle_bot/metrics"
	"github.com/itsvyle/wordle_bot/reconnect"
	"github.com/itsvyle/wordle_bot/wordle"
)

func main() {
	slog.Info("Starting up...")

	cfg, err := config.Load()
	if err != nil {
		slog.With("error", err).Error("Invalid configuration")
		os.Exit(1)
	}

	discordSession, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.With("error", err).Error("Error creating Discord session")
		os.Exit(1)
	}

	// The supervisor owns reconnects when enabled.
	discordSession.ShouldReconnectOnError = !cfg.ReconnectEnabled()
	discordSession.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	m := metrics.New(nil)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				slog.With("error", err).Error("Metrics server stopped")
			}
		}()
	}

	var opts []wordle.Option
	if cfg.DedupeConcurrent {
		opts = append(opts, wordle.WithDedupe())
	}
	bot := CreateNewWordleBot(cfg, wordle.NewProtocol(&discordThreads{session: discordSession}, opts...), m)

	discordSession.AddHandler(bot.readyBot)
	InitThreadHousekeeping(discordSession)
	bot.InitPrefixCommand(discordSession)
	transport := newSessionTransport(discordSession)

	err = discordSession.Open()
	if err != nil {
		slog.With("error", err).Error("Error logging in to the discord session. Check that token is valid.")
		os.Exit(1)
	}
	transport.markStarted()

	defer slog.Info("Bot disconnecting...")
	defer discordSession.Close()

	if cfg.SlashCommandsEnabled() {
		bot.InitSlashCommands(discordSession)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	if cfg.ReconnectEnabled() {
		supervisor := reconnect.NewSupervisor(transport, reconnect.WithRestartHook(func(o reconnect.Outcome, _ error) {
			m.TransportRestarts.WithLabelValues(o.String()).Inc()
		}))
		go supervisor.Run(ctx)
	}

	slog.Info("Bot is now running.  Press CTRL-C to exit.")
	<-ctx.Done()
}
