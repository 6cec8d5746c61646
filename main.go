package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/angristan/music-download-bot/internal/app/services/download"
	"github.com/angristan/music-download-bot/internal/app/services/search"
	server "github.com/angristan/music-download-bot/internal/infra/http"
	"github.com/angristan/music-download-bot/internal/infra/http/handlers/webhook"
	"github.com/angristan/music-download-bot/internal/infra/repository/cache/memory"
	"github.com/angristan/music-download-bot/internal/infra/telegram"
	"github.com/angristan/music-download-bot/internal/infra/telegram/handlers/music"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

func main() {
	config, err := loadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load environment variables")
	}
	configureLogging(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx, config.TracingEndpoint)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logrus.WithError(err).Warn("Failed to flush traces")
		}
	}()

	tracer := otel.Tracer(serviceName)

	bot, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to Telegram")
	}
	if err := tgbotapi.SetLogger(logrus.StandardLogger()); err != nil {
		logrus.WithError(err).Warn("Failed to redirect Telegram logs")
	}

	sources, fetchers, names := splitCatalogs(initCatalogs(ctx, config, tracer))

	searchService, err := search.New(tracer, sources...)
	if err != nil {
		logrus.WithError(err).Fatal("No catalog source connected")
	}

	downloadService := download.New(tracer, download.Config{
		MaxSize: config.MaxAudioSize,
		TempDir: config.TempDir,
	}, fetchers...)

	handler := music.New(
		tracer,
		bot,
		searchService,
		downloadService,
		memory.NewCache(config.CacheCapacity),
		names,
	)
	dispatcher := telegram.NewDispatcher(handler)

	logrus.WithField("bot", bot.Self.UserName).
		WithField("mode", config.Mode).
		WithField("sources", names).
		Info("Bot started")

	switch config.Mode {
	case ModeWebhook:
		err = runWebhook(ctx, config, bot, dispatcher)
	default:
		err = runPolling(ctx, bot, dispatcher)
	}
	if err != nil {
		logrus.WithError(err).Error("Bot stopped with error")
	}

	logrus.Info("Waiting for in-flight updates")
	dispatcher.Wait()
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, dispatcher *telegram.Dispatcher) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		bot.StopReceivingUpdates()
	}()

	dispatcher.Poll(ctx, updates)

	return nil
}

func runWebhook(ctx context.Context, config *Env, bot *tgbotapi.BotAPI, dispatcher *telegram.Dispatcher) error {
	if config.WebhookURL == "" {
		return errors.New("WEBHOOK_URL is required in webhook mode")
	}

	secret := config.WebhookSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	path := "/telegram/" + secret

	wh, err := tgbotapi.NewWebhook(strings.TrimRight(config.WebhookURL, "/") + path)
	if err != nil {
		return err
	}
	if _, err := bot.Request(wh); err != nil {
		return err
	}

	srv, err := server.New(
		server.NewConfig(config.Port, path, false),
		webhook.New(otel.Tracer(serviceName), dispatcher),
	)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
