package services

import (
	"errors"
	"testing"
	"time"

	"backend/entity"
	"backend/repository"
)

func TestToView_DefensiveDefaults(t *testing.T) {
	v := ToView(&entity.Order{ID: "o1"})

	if v.Items == nil || len(v.Items) != 0 {
		t.Errorf("nil items should map to empty slice, got %v", v.Items)
	}
	if v.Status != entity.OrderPending {
		t.Errorf("empty status should default to pending, got %q", v.Status)
	}
	if v.PaymentStatus != entity.PaymentPending {
		t.Errorf("empty payment status should default to pending, got %q", v.PaymentStatus)
	}
	if v.EstimatedPickupTime.IsZero() || v.CreatedAt.IsZero() || v.UpdatedAt.IsZero() {
		t.Error("zero timestamps should default to now")
	}
}

func TestToView_ItemDefaults(t *testing.T) {
	v := ToView(&entity.Order{
		ID: "o2",
		Items: entity.OrderLines{
			{ID: "beef-donair", Name: "Beef Donair", Price: 10.5},
		},
	})
	if v.Items[0].Quantity != 1 {
		t.Errorf("zero quantity should default to 1, got %d", v.Items[0].Quantity)
	}
	if v.Items[0].Customizations == nil {
		t.Error("nil customizations should default to empty map")
	}
}

func TestToView_KeepsPopulatedFields(t *testing.T) {
	pickup := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	v := ToView(&entity.Order{
		ID:              "o3",
		StripeSessionID: "cs_test_123",
		CustomerName:    "Dana",
		CustomerPhone:   "4035551234",
		TotalAmount:     24.00,
		Status:          entity.OrderConfirmed,
		PaymentStatus:   entity.PaymentSucceeded,
		PickupTime:      pickup,
	})
	if v.CustomerInfo.Name != "Dana" || v.CustomerInfo.Phone != "4035551234" {
		t.Errorf("customer info lost: %+v", v.CustomerInfo)
	}
	if v.PaymentIntentID != "cs_test_123" {
		t.Errorf("session id lost: %q", v.PaymentIntentID)
	}
	if !v.EstimatedPickupTime.Equal(pickup) {
		t.Errorf("pickup time changed: %v", v.EstimatedPickupTime)
	}
}

func newOrderService(t *testing.T) *OrderService {
	t.Helper()
	db := newTestDB(t)
	return NewOrderService(db, repository.NewOrderRepository(db))
}

func seedOrder(t *testing.T, s *OrderService, id string, status entity.OrderStatus) {
	t.Helper()
	o := &entity.Order{
		ID:            id,
		CustomerName:  "Test",
		Status:        status,
		PaymentStatus: entity.PaymentSucceeded,
		TotalAmount:   10.5,
		PickupTime:    time.Now().Add(20 * time.Minute),
	}
	if err := s.Repo.Create(s.DB, o); err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func TestUpdateStatus_ForwardProgression(t *testing.T) {
	s := newOrderService(t)
	seedOrder(t, s, "o1", entity.OrderConfirmed)

	v, err := s.UpdateStatus("o1", entity.OrderPreparing)
	if err != nil {
		t.Fatalf("confirmed→preparing: %v", err)
	}
	if v.Status != entity.OrderPreparing {
		t.Errorf("expected preparing, got %q", v.Status)
	}

	if _, err := s.UpdateStatus("o1", entity.OrderCompleted); err != nil {
		t.Fatalf("preparing→completed: %v", err)
	}
}

func TestUpdateStatus_NoPathBack(t *testing.T) {
	s := newOrderService(t)
	seedOrder(t, s, "o1", entity.OrderPreparing)

	if _, err := s.UpdateStatus("o1", entity.OrderConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("preparing→confirmed should be rejected, got %v", err)
	}

	got, err := s.Get("o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != entity.OrderPreparing {
		t.Errorf("status must be unchanged, got %q", got.Status)
	}
}

func TestUpdateStatus_CancelFromActive(t *testing.T) {
	s := newOrderService(t)
	seedOrder(t, s, "o1", entity.OrderConfirmed)

	v, err := s.UpdateStatus("o1", entity.OrderCancelled)
	if err != nil {
		t.Fatalf("confirmed→cancelled: %v", err)
	}
	if v.Status != entity.OrderCancelled {
		t.Errorf("expected cancelled, got %q", v.Status)
	}
}

func TestUpdateStatus_TerminalStaysTerminal(t *testing.T) {
	s := newOrderService(t)
	seedOrder(t, s, "done", entity.OrderCompleted)
	seedOrder(t, s, "gone", entity.OrderCancelled)

	if _, err := s.UpdateStatus("done", entity.OrderCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed→cancelled should be rejected, got %v", err)
	}
	if _, err := s.UpdateStatus("gone", entity.OrderPreparing); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancelled→preparing should be rejected, got %v", err)
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	s := newOrderService(t)
	seedOrder(t, s, "o1", entity.OrderConfirmed)

	if _, err := s.UpdateStatus("o1", entity.OrderStatus("shipped")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := newOrderService(t)

	old := &entity.Order{ID: "old", Status: entity.OrderConfirmed, CreatedAt: time.Now().Add(-time.Hour)}
	fresh := &entity.Order{ID: "fresh", Status: entity.OrderConfirmed, CreatedAt: time.Now()}
	if err := s.Repo.Create(s.DB, old); err != nil {
		t.Fatal(err)
	}
	if err := s.Repo.Create(s.DB, fresh); err != nil {
		t.Fatal(err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(list))
	}
	if list[0].ID != "fresh" {
		t.Errorf("expected newest first, got %q", list[0].ID)
	}
}
