package server

import (
	"github.com/gin-gonic/gin"
)

type WebhookHandler interface {
	Receive(ctx *gin.Context)
}
