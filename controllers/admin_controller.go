package controllers

import (
	"strings"
	"time"

	"backend/alert"
	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AdminController struct {
	PasswordHash []byte // bcrypt ของ ADMIN_PASSWORD ทำตอน start
	JWTSecret    string
	JWTTTL       time.Duration

	Machine   *alert.Machine
	Publisher services.OrderPublisher
}

func NewAdminController(passwordHash []byte, jwtSecret string, ttl time.Duration, m *alert.Machine, pub services.OrderPublisher) *AdminController {
	return &AdminController{
		PasswordHash: passwordHash,
		JWTSecret:    jwtSecret,
		JWTTTL:       ttl,
		Machine:      m,
		Publisher:    pub,
	}
}

type adminAuthReq struct {
	Password string `json:"password" binding:"required"`
}

// POST /admin/auth — รหัสร้านรหัสเดียว ผ่านแล้วได้ JWT role=admin
func (ac *AdminController) Auth(c *gin.Context) {
	var req adminAuthReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if bcrypt.CompareHashAndPassword(ac.PasswordHash, []byte(req.Password)) != nil {
		resp.Unauthorized(c, "invalid password")
		return
	}
	token, err := utils.GenerateToken("admin", ac.JWTSecret, ac.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token})
}

// GET /admin/alerts — สถานะเสียงปลุกปัจจุบัน
func (ac *AdminController) Alerts(c *gin.Context) {
	resp.OK(c, gin.H{
		"state":          ac.Machine.State(),
		"unacknowledged": ac.Machine.Unacknowledged(),
	})
}

// POST /admin/alerts/:orderId/accept — staff กดรับ order หนึ่งตัว
func (ac *AdminController) AcceptAlert(c *gin.Context) {
	id := c.Param("orderId")
	if !ac.Machine.Accept(id) {
		resp.NotFound(c, "order not awaiting acknowledgement")
		return
	}
	resp.OK(c, gin.H{
		"state":          ac.Machine.State(),
		"unacknowledged": ac.Machine.Unacknowledged(),
	})
}

// POST /admin/simulate-order — ปุ่มทดสอบ: order ปลอมเข้า machine + push ให้จอ admin
// ไม่ลง DB (เหมือนไม่เคยเกิดขึ้นจริง)
func (ac *AdminController) SimulateOrder(c *gin.Context) {
	now := time.Now()
	id := "SIM-" + strings.ToUpper(uuid.NewString()[:5])
	fake := services.OrderView{
		ID: id,
		Items: []entity.OrderLine{
			{ID: "beef-donair", Name: "Beef Donair", Quantity: 1, Price: 10.5, Size: "M", Customizations: entity.SelectionMap{}},
		},
		CustomerInfo:        services.CustomerInfo{Name: "Test Customer"},
		TotalAmount:         10.5,
		Status:              entity.OrderConfirmed,
		PaymentStatus:       entity.PaymentSucceeded,
		PaymentIntentID:     "pi_sim",
		EstimatedPickupTime: now.Add(15 * time.Minute),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	ac.Machine.Simulate(id)
	if ac.Publisher != nil {
		ac.Publisher.PublishNewOrder(fake)
	}
	resp.OK(c, fake)
}
