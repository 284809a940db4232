package controllers

import (
	"log"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
)

type WebhookController struct {
	Service       *services.WebhookService
	SigningSecret string
}

func NewWebhookController(s *services.WebhookService, secret string) *WebhookController {
	return &WebhookController{Service: s, SigningSecret: secret}
}

// POST /webhook/stripe
// signature ไม่ผ่าน → 400 ไม่มี state change
// ผ่านแล้ว → ตอบ {received:true} เสมอ (handled หรือไม่ก็ตาม) กัน retry storm
func (ctl *WebhookController) Handle(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		log.Printf("webhook: read body failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook error"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, ctl.SigningSecret)
	if err != nil {
		log.Printf("webhook: signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	ctl.Service.HandleEvent(event)

	c.JSON(http.StatusOK, gin.H{"received": true})
}
