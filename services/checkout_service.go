package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"backend/entity"
	"backend/pricing"
	"backend/repository"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// CustomerInfo: name บังคับ, phone/email ใส่หรือไม่ก็ได้ (แต่ถ้าใส่ต้อง valid)
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type CheckoutIn struct {
	CustomerInfo CustomerInfo `json:"customerInfo"`
}

type CheckoutOut struct {
	SessionID  string    `json:"sessionId"`
	URL        string    `json:"url"`
	PickupTime time.Time `json:"pickupTime"`
}

type CheckoutService struct {
	CartRepo     *repository.CartRepository
	SiteURL      string
	PickupBuffer time.Duration

	// ชี้ทับได้ในเทสต์ ปกติยิง Stripe จริง
	CreateSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewCheckoutService(cartRepo *repository.CartRepository, siteURL string, pickupBuffer time.Duration) *CheckoutService {
	return &CheckoutService{
		CartRepo:      cartRepo,
		SiteURL:       siteURL,
		PickupBuffer:  pickupBuffer,
		CreateSession: session.New,
	}
}

var ErrEmptyCart = errors.New("cart is empty")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var nonDigits = regexp.MustCompile(`[^0-9]`)

// ValidateCustomerInfo คืน map field -> ข้อความ error (ว่าง = ผ่าน)
func ValidateCustomerInfo(ci CustomerInfo) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(ci.Name) == "" {
		errs["name"] = "Name is required"
	}
	if ci.Phone != "" {
		if len(nonDigits.ReplaceAllString(ci.Phone, "")) < 10 {
			errs["phone"] = "Please enter a valid phone number"
		}
	}
	if ci.Email != "" {
		if !emailPattern.MatchString(ci.Email) {
			errs["email"] = "Please enter a valid email address"
		}
	}
	return errs
}

// Checkout สร้าง Stripe Checkout Session จากตะกร้าปัจจุบัน
// validation ไม่ผ่าน → ไม่มี network call, ตะกร้าไม่ถูกแตะทุกกรณี
func (s *CheckoutService) Checkout(token string, in *CheckoutIn) (*CheckoutOut, map[string]string, error) {
	if fieldErrs := ValidateCustomerInfo(in.CustomerInfo); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	cart, err := s.CartRepo.GetCartWithItems(token)
	if err != nil {
		return nil, nil, err
	}
	if len(cart.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	pickupTime := time.Now().Add(s.PickupBuffer)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(cart.Items))
	orderLines := make(entity.OrderLines, 0, len(cart.Items))
	for _, it := range cart.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyCAD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(it.ItemName),
					Description: stripe.String(lineDescription(it)),
				},
				UnitAmount: stripe.Int64(pricing.Cents(it.UnitPrice)),
			},
			Quantity: stripe.Int64(int64(it.Qty)),
		})
		orderLines = append(orderLines, entity.OrderLine{
			ID:                  it.MenuItemID,
			Name:                it.ItemName,
			Quantity:            it.Qty,
			Price:               it.UnitPrice,
			Size:                it.Size,
			Customizations:      it.Selections,
			SpecialInstructions: it.Note,
		})
	}

	itemsJSON, err := json.Marshal(orderLines)
	if err != nil {
		return nil, nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.SiteURL + "/order-confirmation?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.SiteURL + "/checkout"),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
	}
	if in.CustomerInfo.Email != "" {
		params.CustomerEmail = stripe.String(in.CustomerInfo.Email)
	}
	params.AddMetadata("orderItems", string(itemsJSON))
	params.AddMetadata("estimatedPickupTime", pickupTime.Format(time.RFC3339))
	params.AddMetadata("customerName", in.CustomerInfo.Name)
	if in.CustomerInfo.Phone != "" {
		params.AddMetadata("customerPhone", in.CustomerInfo.Phone)
	}
	if in.CustomerInfo.Email != "" {
		params.AddMetadata("customerEmail", in.CustomerInfo.Email)
	}

	sess, err := s.CreateSession(params)
	if err != nil {
		return nil, nil, err
	}

	return &CheckoutOut{SessionID: sess.ID, URL: sess.URL, PickupTime: pickupTime}, nil, nil
}

func lineDescription(it entity.CartItem) string {
	desc := fmt.Sprintf("Unit price: $%.2f", it.UnitPrice)
	if len(it.Selections) > 0 {
		groups := make([]string, 0, len(it.Selections))
		for g := range it.Selections {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		parts := make([]string, 0, len(groups))
		for _, g := range groups {
			parts = append(parts, g+": "+strings.Join(it.Selections[g], ", "))
		}
		desc += " | " + strings.Join(parts, ", ")
	}
	if it.Note != "" {
		desc += " | Note: " + it.Note
	}
	return desc
}
