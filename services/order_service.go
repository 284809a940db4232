package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type OrderService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo}
}

// OrderView คือ shape ที่ API ส่งออก (แปลงจาก row พร้อม default ทุก field ที่ optional)
type OrderView struct {
	ID                  string               `json:"id"`
	Items               []entity.OrderLine   `json:"items"`
	CustomerInfo        CustomerInfo         `json:"customerInfo"`
	TotalAmount         float64              `json:"totalAmount"`
	Status              entity.OrderStatus   `json:"status"`
	PaymentStatus       entity.PaymentStatus `json:"paymentStatus"`
	PaymentIntentID     string               `json:"paymentIntentId,omitempty"`
	SpecialInstructions string               `json:"specialInstructions,omitempty"`
	EstimatedPickupTime time.Time            `json:"estimatedPickupTime"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// ToView แปลง row → OrderView แบบ defensive: ทุก optional field มี default
// แยกเป็น pure function เพื่อเทสต์ได้โดยไม่ต้องแตะ DB
func ToView(o *entity.Order) OrderView {
	v := OrderView{
		ID:                  o.ID,
		Items:               o.Items,
		TotalAmount:         o.TotalAmount,
		Status:              o.Status,
		PaymentStatus:       o.PaymentStatus,
		PaymentIntentID:     o.StripeSessionID,
		SpecialInstructions: o.SpecialInstructions,
		EstimatedPickupTime: o.PickupTime,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		CustomerInfo: CustomerInfo{
			Name:  o.CustomerName,
			Phone: o.CustomerPhone,
			Email: o.CustomerEmail,
		},
	}
	if v.Items == nil {
		v.Items = []entity.OrderLine{}
	}
	for i := range v.Items {
		if v.Items[i].Quantity <= 0 {
			v.Items[i].Quantity = 1
		}
		if v.Items[i].Customizations == nil {
			v.Items[i].Customizations = entity.SelectionMap{}
		}
	}
	if v.Status == "" {
		v.Status = entity.OrderPending
	}
	if v.PaymentStatus == "" {
		v.PaymentStatus = entity.PaymentPending
	}
	now := time.Now()
	if v.EstimatedPickupTime.IsZero() {
		v.EstimatedPickupTime = now
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = now
	}
	return v
}

func (s *OrderService) List() ([]OrderView, error) {
	rows, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]OrderView, 0, len(rows))
	for i := range rows {
		out = append(out, ToView(&rows[i]))
	}
	return out, nil
}

func (s *OrderService) Get(id string) (*OrderView, error) {
	o, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	v := ToView(o)
	return &v, nil
}

var statusRank = map[entity.OrderStatus]int{
	entity.OrderPending:           0,
	entity.OrderPaymentProcessing: 1,
	entity.OrderConfirmed:         2,
	entity.OrderPreparing:         3,
	entity.OrderReady:             4,
	entity.OrderCompleted:         5,
}

// validPrev คืน status ตั้งต้นที่อนุญาตให้เปลี่ยนเป็น to:
// เดินหน้าเท่านั้น (ไม่มีทางย้อน), cancelled ไปได้จากทุกสถานะที่ยังไม่จบ
func validPrev(to entity.OrderStatus) ([]entity.OrderStatus, error) {
	if to == entity.OrderCancelled {
		return []entity.OrderStatus{
			entity.OrderPending, entity.OrderPaymentProcessing,
			entity.OrderConfirmed, entity.OrderPreparing, entity.OrderReady,
		}, nil
	}
	rank, ok := statusRank[to]
	if !ok {
		return nil, ErrUnknownStatus
	}
	var from []entity.OrderStatus
	for st, r := range statusRank {
		if r < rank {
			from = append(from, st)
		}
	}
	if len(from) == 0 {
		return nil, ErrInvalidTransition
	}
	return from, nil
}

// UpdateStatus เปลี่ยนสถานะแบบ guard: 0 แถวโดน = transition ไม่ valid หรือชนกัน
func (s *OrderService) UpdateStatus(id string, to entity.OrderStatus) (*OrderView, error) {
	from, err := validPrev(to)
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.Get(id); err != nil {
			return err
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, id, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}
