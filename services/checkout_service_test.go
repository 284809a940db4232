package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"backend/catalog"
	"backend/entity"
	"backend/repository"

	"github.com/stripe/stripe-go/v76"
)

func TestValidateCustomerInfo(t *testing.T) {
	cases := []struct {
		name   string
		in     CustomerInfo
		fields []string // field ที่ต้อง error
	}{
		{"name only is fine", CustomerInfo{Name: "Dana"}, nil},
		{"blank name", CustomerInfo{Name: "   "}, []string{"name"}},
		{"short phone", CustomerInfo{Name: "Dana", Phone: "555-123"}, []string{"phone"}},
		{"formatted phone ok", CustomerInfo{Name: "Dana", Phone: "(403) 555-1234"}, nil},
		{"bad email", CustomerInfo{Name: "Dana", Email: "not-an-email"}, []string{"email"}},
		{"good email", CustomerInfo{Name: "Dana", Email: "dana@example.com"}, nil},
		{"everything wrong", CustomerInfo{Phone: "12", Email: "x@"}, []string{"name", "phone", "email"}},
	}

	for _, tc := range cases {
		errs := ValidateCustomerInfo(tc.in)
		if len(errs) != len(tc.fields) {
			t.Errorf("%s: expected %d errors, got %v", tc.name, len(tc.fields), errs)
			continue
		}
		for _, f := range tc.fields {
			if _, ok := errs[f]; !ok {
				t.Errorf("%s: expected error on %q, got %v", tc.name, f, errs)
			}
		}
	}
}

func newCheckoutEnv(t *testing.T) (*CartService, *CheckoutService) {
	t.Helper()
	db := newTestDB(t)
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cartRepo := repository.NewCartRepository(db)
	cartSvc := NewCartService(db, cartRepo, cat)
	checkout := NewCheckoutService(cartRepo, "https://example.test", 20*time.Minute)
	return cartSvc, checkout
}

func TestCheckout_ValidationFailureMakesNoCall(t *testing.T) {
	cartSvc, checkout := newCheckoutEnv(t)
	token := "chk-1"
	if _, err := cartSvc.Add(token, &AddToCartIn{MenuItemID: "baklava", Size: "Regular"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	called := false
	checkout.CreateSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		called = true
		return &stripe.CheckoutSession{ID: "cs_test"}, nil
	}

	out, fieldErrs, err := checkout.Checkout(token, &CheckoutIn{CustomerInfo: CustomerInfo{Name: ""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Error("expected no session on validation failure")
	}
	if len(fieldErrs) == 0 {
		t.Error("expected field errors")
	}
	if called {
		t.Error("validation failure must not reach the payment processor")
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	_, checkout := newCheckoutEnv(t)
	checkout.CreateSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		t.Fatal("empty cart must not create a session")
		return nil, nil
	}
	_, _, err := checkout.Checkout("nobody", &CheckoutIn{CustomerInfo: CustomerInfo{Name: "Dana"}})
	if err == nil {
		t.Error("expected empty cart error")
	}
}

func TestCheckout_BuildsSessionFromCart(t *testing.T) {
	cartSvc, checkout := newCheckoutEnv(t)
	token := "chk-2"
	if _, err := cartSvc.Add(token, &AddToCartIn{
		MenuItemID:          "beef-donair",
		Size:                "M",
		Qty:                 2,
		Selections:          entity.SelectionMap{"extras": {"extra-cheese"}}, // unit 12.00
		SpecialInstructions: "no onions",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	var got *stripe.CheckoutSessionParams
	checkout.CreateSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		got = params
		return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://stripe.test/pay"}, nil
	}

	out, fieldErrs, err := checkout.Checkout(token, &CheckoutIn{
		CustomerInfo: CustomerInfo{Name: "Dana", Phone: "4035551234", Email: "dana@example.com"},
	})
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("checkout failed: %v %v", err, fieldErrs)
	}
	if out.SessionID != "cs_test_1" || out.URL == "" {
		t.Errorf("bad session out: %+v", out)
	}

	if len(got.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(got.LineItems))
	}
	li := got.LineItems[0]
	if *li.PriceData.UnitAmount != 1200 {
		t.Errorf("expected unit 1200 cents, got %d", *li.PriceData.UnitAmount)
	}
	if *li.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", *li.Quantity)
	}

	var lines entity.OrderLines
	if err := json.Unmarshal([]byte(got.Metadata["orderItems"]), &lines); err != nil {
		t.Fatalf("orderItems metadata not valid JSON: %v", err)
	}
	if len(lines) != 1 || lines[0].ID != "beef-donair" || lines[0].Quantity != 2 || lines[0].Price != 12.00 {
		t.Errorf("bad orderItems metadata: %+v", lines)
	}
	if lines[0].SpecialInstructions != "no onions" {
		t.Errorf("note lost in metadata: %+v", lines[0])
	}

	if _, err := time.Parse(time.RFC3339, got.Metadata["estimatedPickupTime"]); err != nil {
		t.Errorf("pickup time not RFC3339: %v", err)
	}
	if got.Metadata["customerName"] != "Dana" {
		t.Errorf("customerName metadata missing: %v", got.Metadata)
	}

	// Stripe พัง → error กลับไป แต่ตะกร้าไม่ถูกแตะ
	checkout.CreateSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("stripe unavailable")
	}
	if _, _, err := checkout.Checkout(token, &CheckoutIn{CustomerInfo: CustomerInfo{Name: "Dana"}}); err == nil {
		t.Error("expected processor error")
	}
	view, err := cartSvc.Get(token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Items) != 1 {
		t.Errorf("cart must be intact after processor failure, got %d lines", len(view.Items))
	}
}
