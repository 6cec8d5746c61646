package server

type Config struct {
	Port              string
	WebhookPath       string
	disableMiddleware bool
}

func NewConfig(
	port string,
	webhookPath string,
	disableMiddleware bool,
) Config {
	return Config{
		Port:              port,
		WebhookPath:       webhookPath,
		disableMiddleware: disableMiddleware,
	}
}
