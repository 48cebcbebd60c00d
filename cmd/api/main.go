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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/acqu1red/osnovabot/internal/api"
	"github.com/acqu1red/osnovabot/internal/config"
	"github.com/acqu1red/osnovabot/internal/lava"
	"github.com/acqu1red/osnovabot/internal/logging"
	"github.com/acqu1red/osnovabot/internal/notify"
	"github.com/acqu1red/osnovabot/internal/questions"
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := os.MkdirAll(cfg.Ledger.UploadsDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create uploads directory")
	}

	st, err := store.Open(cfg.Ledger.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Ledger.DataDir).Msg("failed to open record store")
	}
	defer st.Close()

	dispatcher := notify.NewDispatcher(cfg.Ledger.BotWebhookURL, cfg.Ledger.NotifyTimeout)
	qsvc := questions.NewService(st, dispatcher)
	gateway := lava.NewClient(lava.Config{
		APIKey:  cfg.Ledger.Lava.APIKey,
		BaseURL: cfg.Ledger.Lava.BaseURL,
		Timeout: cfg.Ledger.Lava.Timeout,
	})

	handler := api.NewHandler(st, qsvc, gateway, cfg.Ledger.UploadsDir)

	addr := fmt.Sprintf("%s:%d", cfg.Ledger.Host, cfg.Ledger.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("ledger listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
