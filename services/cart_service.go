package services

import (
	"errors"
	"sort"
	"strings"

	"backend/catalog"
	"backend/entity"
	"backend/pricing"
	"backend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB      *gorm.DB
	Repo    *repository.CartRepository
	Catalog *catalog.Catalog
}

func NewCartService(db *gorm.DB, repo *repository.CartRepository, cat *catalog.Catalog) *CartService {
	return &CartService{DB: db, Repo: repo, Catalog: cat}
}

type AddToCartIn struct {
	MenuItemID          string              `json:"menuItemId" binding:"required"`
	Size                string              `json:"size" binding:"required"`
	Qty                 int                 `json:"qty"`
	Selections          entity.SelectionMap `json:"selections"`
	SpecialInstructions string              `json:"specialInstructions"`
}

type CartView struct {
	Token      string            `json:"token"`
	Items      []entity.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

// BuildLineKey สร้าง identity key ของ line: menu + size + selections (เรียง
// ตามชื่อ group, ค่า checkbox เรียงภายใน) + note
// สอง config ที่หน้าตาเหมือนกันได้ key เดียวกันเสมอ ไม่ว่าจะเลือกลำดับไหน
func BuildLineKey(menuItemID, size string, selections entity.SelectionMap, note string) string {
	groups := make([]string, 0, len(selections))
	for g := range selections {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		vals := append([]string(nil), selections[g]...)
		sort.Strings(vals)
		parts = append(parts, g+":"+strings.Join(vals, ","))
	}
	return menuItemID + "-" + size + "-" + strings.Join(parts, "|") + "-" + note
}

func (s *CartService) Get(token string) (*CartView, error) {
	c, err := s.Repo.GetCartWithItems(token)
	if err != nil {
		return nil, err
	}
	return buildView(c), nil
}

func (s *CartService) Add(token string, in *AddToCartIn) (*CartView, error) {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	item, ok := s.Catalog.ItemByID(in.MenuItemID)
	if !ok {
		return nil, errors.New("menu item not found")
	}
	size, ok := item.PriceForSize(in.Size)
	if !ok {
		return nil, errors.New("size not available for this item")
	}
	if in.Selections == nil {
		in.Selections = entity.SelectionMap{}
	}
	if err := pricing.ValidateSelections(item, in.Selections); err != nil {
		return nil, err
	}

	unit := pricing.UnitPrice(item, size, in.Selections)
	line := &entity.CartItem{
		LineKey:    BuildLineKey(item.ID, size.Size, in.Selections, in.SpecialInstructions),
		MenuItemID: item.ID,
		ItemName:   item.Name,
		Size:       size.Size,
		Qty:        in.Qty,
		UnitPrice:  unit,
		TotalPrice: pricing.LineTotal(unit, in.Qty),
		Note:       in.SpecialInstructions,
		Selections: in.Selections,
	}

	c, err := s.Repo.GetOrCreateCart(token)
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpsertLine(tx, c.ID, line)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(token)
}

func (s *CartService) UpdateQty(token string, itemID uint, qty int) (*CartView, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.UpdateQty(tx, token, itemID, qty)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(token)
}

func (s *CartService) Remove(token string, itemID uint) (*CartView, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.RemoveItem(tx, token, itemID)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(token)
}

func (s *CartService) Clear(token string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.ClearCart(tx, token)
	})
}

func buildView(c *entity.Cart) *CartView {
	v := &CartView{Token: c.Token, Items: c.Items}
	if v.Items == nil {
		v.Items = []entity.CartItem{}
	}
	var total float64
	for _, it := range c.Items {
		v.TotalItems += it.Qty
		total += it.TotalPrice
	}
	v.TotalPrice = pricing.RoundCents(total)
	return v
}
