package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Menu     *controllers.MenuController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Webhook  *controllers.WebhookController
	Order    *controllers.OrderController
	Admin    *controllers.AdminController
	Hub      *ws.OrderHub

	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Public: menu + cart + checkout
	r.GET("/menu", d.Menu.List)
	r.GET("/menu/:id", d.Menu.Detail)

	r.GET("/cart", d.Cart.Get)
	r.POST("/cart/items", d.Cart.AddItem)
	r.PATCH("/cart/items/:id", d.Cart.UpdateQty)
	r.DELETE("/cart/items/:id", d.Cart.RemoveItem)
	r.DELETE("/cart", d.Cart.Clear)

	r.POST("/checkout/session", d.Checkout.CreateSession)

	// Stripe เรียกเข้ามาเอง (verify ด้วย signature ไม่ใช่ JWT)
	r.POST("/webhook/stripe", d.Webhook.Handle)

	// Admin
	r.POST("/admin/auth", d.Admin.Auth)

	admin := r.Group("/admin", middlewares.AdminAuthMiddleware(d.JWTSecret))
	{
		admin.GET("/orders", d.Order.List)
		admin.GET("/orders/:id", d.Order.Detail)
		admin.PATCH("/orders/:id", d.Order.UpdateStatus)

		admin.GET("/alerts", d.Admin.Alerts)
		admin.POST("/alerts/:orderId/accept", d.Admin.AcceptAlert)
		admin.POST("/simulate-order", d.Admin.SimulateOrder)
	}

	// WS: token มาทาง query (?token=...)
	r.GET("/ws/admin/orders", middlewares.AdminAuthMiddleware(d.JWTSecret), d.Hub.HandleWebSocket)
}
