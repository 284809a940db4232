package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderPending           OrderStatus = "pending"
	OrderPaymentProcessing OrderStatus = "payment_processing"
	OrderConfirmed         OrderStatus = "confirmed"
	OrderPreparing         OrderStatus = "preparing"
	OrderReady             OrderStatus = "ready"
	OrderCompleted         OrderStatus = "completed"
	OrderCancelled         OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSucceeded  PaymentStatus = "succeeded"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// OrderLine คือ snapshot ของ cart line ตอนจ่ายเงิน (เก็บเป็น JSON ใน orders.items)
type OrderLine struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Quantity            int          `json:"quantity"`
	Price               float64      `json:"price"` // unit price
	Size                string       `json:"size,omitempty"`
	Customizations      SelectionMap `json:"customizations,omitempty"`
	SpecialInstructions string       `json:"specialInstructions,omitempty"`
}

type OrderLines []OrderLine

func (l OrderLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *OrderLines) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*l = OrderLines{}
		return nil
	default:
		return errors.New("unsupported items column type")
	}
	if len(b) == 0 {
		*l = OrderLines{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// Order สร้างโดย webhook ตอนจ่ายเงินสำเร็จ ไม่มีการลบ (cancelled เป็น terminal status)
type Order struct {
	ID              string `json:"id" gorm:"primaryKey"`
	StripeSessionID string `json:"stripeSessionId" gorm:"index"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`

	TotalAmount   float64       `json:"totalAmount"`
	Status        OrderStatus   `json:"status" gorm:"index"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	Items OrderLines `json:"items" gorm:"type:text"`

	SpecialInstructions string    `json:"specialInstructions"`
	PickupTime          time.Time `json:"pickupTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WebhookDeadLetter เก็บ payload ของ event ที่ insert order ไม่สำเร็จ
// เพื่อไม่ให้ order ที่จ่ายเงินแล้วหายเงียบ ๆ
type WebhookDeadLetter struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   string `gorm:"index"`
	EventType string
	Payload   string `gorm:"type:text"`
	Reason    string
	CreatedAt time.Time
}
