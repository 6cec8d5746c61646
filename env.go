package main

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

type Env struct {
	BotToken string `env:"BOT_TOKEN" env-required:"true"`

	YandexToken         string `env:"YANDEX_TOKEN"`
	VKToken             string `env:"VK_TOKEN"`
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`

	Mode          string `env:"MODE" env-default:"polling"`
	WebhookURL    string `env:"WEBHOOK_URL"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	Port          string `env:"PORT" env-default:"1323"`

	MaxAudioSize  int64  `env:"MAX_AUDIO_SIZE" env-default:"52428800"`
	CacheCapacity int    `env:"CACHE_CAPACITY" env-default:"50"`
	TempDir       string `env:"TEMP_DIR"`

	TracingEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
}

// loadEnv reads an optional .env file, then the process environment.
func loadEnv() (*Env, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("No .env file loaded")
	}

	var config Env
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func configureLogging(config *Env) {
	if config.LogFormat == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		logrus.WithError(err).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
