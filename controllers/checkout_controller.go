package controllers

import (
	"errors"
	"log"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ Service *services.CheckoutService }

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Service: s}
}

// POST /checkout/session
// validation พัง → 400 พร้อม error ราย field, ไม่มี call ไป Stripe
// Stripe พัง → 502, ตะกร้าอยู่ครบเหมือนเดิม
func (ctl *CheckoutController) CreateSession(c *gin.Context) {
	token := cartToken(c)

	var in services.CheckoutIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, fieldErrs, err := ctl.Service.Checkout(token, &in)
	if len(fieldErrs) > 0 {
		resp.ValidationFailed(c, fieldErrs)
		return
	}
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			resp.BadRequest(c, err.Error())
			return
		}
		log.Printf("checkout: session create failed: %v", err)
		c.JSON(502, gin.H{"ok": false, "error": "failed to create checkout session"})
		return
	}
	resp.OK(c, out)
}
