package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"butler-bot/internal/cache"
	"butler-bot/internal/command"
	"butler-bot/internal/config"
	"butler-bot/internal/console"
	"butler-bot/internal/cooldown"
	"butler-bot/internal/discord"
	"butler-bot/internal/logging"
	"butler-bot/internal/statusapi"
	"butler-bot/internal/weather"
	"butler-bot/pkg/cmd"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := logging.Setup(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}

	logger.Info().Str("prefix", cfg.Prefix).Msg("starting bot")

	token, err := cfg.Token()
	if err != nil {
		logger.Error().Err(err).Msg("no bot token, cannot start")
		os.Exit(1)
	}

	weatherKey := cfg.WeatherKey()
	if weatherKey == "" {
		logger.Warn().Msg("no weather api key, weather command will report unconfigured")
	}

	registry := cmd.NewRegistry()
	deps := &command.Deps{
		Registry:  registry,
		Weather:   weather.NewService(weather.NewClient(weatherKey), cache.New(cfg.CacheTTL())),
		Cooldowns: cooldown.New(cfg.Cooldown()),
		Log:       logger,
	}
	if err := command.RegisterAll(registry, deps); err != nil {
		logger.Error().Err(err).Msg("command registration failed")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := console.NewBridge(cfg.ConsoleTimeout)
	bot := discord.New(cfg, registry, bridge, deps, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx, token)
	}()

	go console.New(bridge).Run(ctx)

	if cfg.StatusAddr != "" {
		go statusapi.New(bridge, logger).Run(ctx, cfg.StatusAddr)
	}

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	waitForShutdown(logger, sig, errCh, cancel, os.Exit)
}

// waitForShutdown blocks until the bot stops. The first signal latches
// shutdown and cancels the run context exactly once; a second signal before
// the close finishes forces immediate exit. A close failure exits non-zero.
func waitForShutdown(logger zerolog.Logger, sig <-chan os.Signal, errCh <-chan error, cancel context.CancelFunc, exit func(int)) {
	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("bot stopped")
			exit(1)
		}
		return
	}

	// Give the gateway a clean close; a second signal forces immediate exit.
	select {
	case <-sig:
		logger.Warn().Msg("forced exit")
		exit(0)
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("shutdown error")
			exit(1)
			return
		}
		logger.Info().Msg("bot has shut down")
	}
}
