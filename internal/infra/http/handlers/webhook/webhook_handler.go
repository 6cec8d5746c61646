package webhook

import (
	"go.opentelemetry.io/otel/trace"
)

type WebhookHandler struct {
	tracer     trace.Tracer
	dispatcher UpdateDispatcher
}

func New(
	tracer trace.Tracer,
	dispatcher UpdateDispatcher,
) *WebhookHandler {
	return &WebhookHandler{
		tracer:     tracer,
		dispatcher: dispatcher,
	}
}
