package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/config"
	"github.com/acqu1red/osnovabot/internal/handlers"
	"github.com/acqu1red/osnovabot/internal/ledgerclient"
	"github.com/acqu1red/osnovabot/internal/logging"
	"github.com/acqu1red/osnovabot/store"
)

func main() {
	_ = godotenv.Load("config.env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Bot.Token == "" {
		log.Fatal().Msg("bot token is not set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rdb, err := store.NewRedisClient(cfg.Bot.Redis.Addr(), cfg.Bot.Redis.Password, cfg.Bot.Redis.DB, "osnovabot")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	userState := store.NewRedisUserStore(rdb, 24)
	ledger := ledgerclient.New(cfg.Bot.LedgerURL)

	b, err := bot.New(cfg.Bot.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	h := handlers.NewHandlers(cfg.Bot, userState, ledger)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, h.MainHandler)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, h.MainHandler)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.PreCheckoutQuery != nil
	}, h.MainHandler)

	webhooks := handlers.NewWebhookServer(b, userState, cfg.Bot.ChannelID)
	addr := fmt.Sprintf("%s:%d", cfg.Bot.WebhookHost, cfg.Bot.WebhookPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           webhooks.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("webhook server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("webhook server failed")
		}
	}()

	log.Info().Msg("bot started")
	b.Start(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("webhook server shutdown failed")
	}
}
