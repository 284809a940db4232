package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"backend/alert"
	"backend/catalog"
	"backend/configs"
	"backend/controllers"
	"backend/repository"
	"backend/routes"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := configs.LoadConfig()

	stripe.Key = cfg.StripeSecretKey

	// DB
	db, err := configs.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("connect db failed: %v", err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	// Catalog (embed จาก menu.json)
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("load menu catalog failed: %v", err)
	}

	// Repos + services
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	cartSvc := services.NewCartService(db, cartRepo, cat)
	checkoutSvc := services.NewCheckoutService(cartRepo, cfg.SiteURL, cfg.PickupBuffer)
	orderSvc := services.NewOrderService(db, orderRepo)

	// Realtime hub + alert machine + feed
	hub := ws.NewOrderHub()
	go hub.Run()

	machine := alert.NewMachine(cfg.AlertWindow, cfg.RingInterval, hub.PublishRing)
	feed := alert.NewFeed(machine, func() ([]alert.Snapshot, error) {
		rows, err := orderRepo.List()
		if err != nil {
			return nil, err
		}
		out := make([]alert.Snapshot, 0, len(rows))
		for _, o := range rows {
			out = append(out, alert.Snapshot{ID: o.ID, CreatedAt: o.CreatedAt})
		}
		return out, nil
	}, cfg.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go feed.Run(ctx)

	webhookSvc := services.NewWebhookService(db, orderRepo, hub, feed.Kick)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password failed: %v", err)
	}

	deps := &routes.Deps{
		Menu:      controllers.NewMenuController(cat),
		Cart:      controllers.NewCartController(cartSvc),
		Checkout:  controllers.NewCheckoutController(checkoutSvc),
		Webhook:   controllers.NewWebhookController(webhookSvc, cfg.StripeWebhookSecret),
		Order:     controllers.NewOrderController(orderSvc),
		Admin:     controllers.NewAdminController(passwordHash, cfg.JWTSecret, cfg.JWTTTL, machine, hub),
		Hub:       hub,
		JWTSecret: cfg.JWTSecret,
	}

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, deps)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
