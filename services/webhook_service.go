package services

import (
	"encoding/json"
	"log"
	"time"

	"backend/entity"
	"backend/repository"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"
)

// OrderPublisher กระจาย order ใหม่ให้ admin client ที่ subscribe อยู่
// (best-effort: พังก็แค่ log ไม่กระทบ webhook)
type OrderPublisher interface {
	PublishNewOrder(order OrderView)
}

type WebhookService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository

	Publisher OrderPublisher
	Kick      func() // สะกิด alert feed ให้ refetch เร็วกว่า poll รอบถัดไป
}

func NewWebhookService(db *gorm.DB, repo *repository.OrderRepository, pub OrderPublisher, kick func()) *WebhookService {
	return &WebhookService{DB: db, Repo: repo, Publisher: pub, Kick: kick}
}

// HandleEvent ประมวลผล event ที่ verify signature แล้ว
// event ที่ไม่รู้จัก = log แล้วผ่าน (ตอบ received เสมอ กัน retry storm)
func (s *WebhookService) HandleEvent(event stripe.Event) {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Printf("webhook: bad session payload for %s: %v", event.ID, err)
			s.deadLetter(event, "unmarshal: "+err.Error())
			return
		}
		s.handleCompletedSession(event, &sess)

	case "payment_intent.succeeded", "payment_intent.payment_failed":
		log.Printf("webhook: %s event %s acknowledged", event.Type, event.ID)

	default:
		log.Printf("webhook: unhandled event type %s", event.Type)
	}
}

func (s *WebhookService) handleCompletedSession(event stripe.Event, sess *stripe.CheckoutSession) {
	var items entity.OrderLines
	if raw := sess.Metadata["orderItems"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			log.Printf("webhook: bad orderItems metadata on %s: %v", sess.ID, err)
			items = entity.OrderLines{}
		}
	}

	pickupTime := time.Now()
	if raw := sess.Metadata["estimatedPickupTime"]; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			pickupTime = t
		}
	}

	// ข้อมูลลูกค้า: ของที่ Stripe checkout เก็บเองมาก่อน, metadata เป็น fallback
	name := sess.Metadata["customerName"]
	email := sess.Metadata["customerEmail"]
	phone := sess.Metadata["customerPhone"]
	if cd := sess.CustomerDetails; cd != nil {
		if cd.Name != "" {
			name = cd.Name
		}
		if cd.Email != "" {
			email = cd.Email
		}
		if cd.Phone != "" {
			phone = cd.Phone
		}
	}
	if name == "" {
		name = "Anonymous Customer"
	}

	order := &entity.Order{
		ID:                  uuid.NewString(),
		StripeSessionID:     sess.ID,
		CustomerName:        name,
		CustomerPhone:       phone,
		CustomerEmail:       email,
		TotalAmount:         float64(sess.AmountTotal) / 100,
		Status:              entity.OrderConfirmed,
		PaymentStatus:       entity.PaymentSucceeded,
		Items:               items,
		SpecialInstructions: sess.Metadata["specialInstructions"],
		PickupTime:          pickupTime,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Create(tx, order)
	})
	if err != nil {
		// จ่ายเงินสำเร็จแล้วแต่เก็บ order ไม่ได้ → ลง dead letter ไว้กู้ทีหลัง
		// ยังตอบ received เพราะให้ Stripe retry ซ้ำไม่ช่วยอะไรถ้า DB พัง
		log.Printf("webhook: order insert failed for session %s: %v", sess.ID, err)
		s.deadLetter(event, "insert: "+err.Error())
		return
	}

	log.Printf("webhook: order %s created from session %s", order.ID, sess.ID)

	if s.Publisher != nil {
		s.Publisher.PublishNewOrder(ToView(order))
	}
	if s.Kick != nil {
		s.Kick()
	}
}

func (s *WebhookService) deadLetter(event stripe.Event, reason string) {
	dl := &entity.WebhookDeadLetter{
		EventID:   event.ID,
		EventType: string(event.Type),
		Payload:   string(event.Data.Raw),
		Reason:    reason,
	}
	if err := s.Repo.CreateDeadLetter(dl); err != nil {
		log.Printf("webhook: dead letter write failed for %s: %v", event.ID, err)
	}
}
