package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Receive acknowledges the update right away; handling continues in the
// background so Telegram does not retry slow deliveries.
func (h *WebhookHandler) Receive(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "WebhookHandler.Receive")
	defer span.End()

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logrus.WithError(err).Warn("Rejected webhook payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
		return
	}

	span.SetAttributes(attribute.Int("update_id", update.UpdateID))
	h.dispatcher.Dispatch(ctx, update)

	c.Status(http.StatusOK)
}
