package entity

// MenuCategory คือหมวดของเมนูตาม catalog
type MenuCategory string

const (
	CategoryPitaWraps       MenuCategory = "pita-wraps"
	CategoryPlatters        MenuCategory = "platters"
	CategorySpecialPlatters MenuCategory = "special-platters"
	CategorySalads          MenuCategory = "salads"
	CategoryDesserts        MenuCategory = "desserts"
	CategoryBeverages       MenuCategory = "beverages"
	CategoryDips            MenuCategory = "dips"
	CategorySides           MenuCategory = "sides"
	CategoryPies            MenuCategory = "pies"
)

// Price คือราคาหนึ่ง size ของเมนู
type Price struct {
	Size  string  `json:"size"` // S, M, L, Jumbo, Regular, Can, Bottle
	Price float64 `json:"price"`
	Label string  `json:"label"` // e.g. "M: $10.50"
}

const (
	CustomizationRadio    = "radio"    // single required choice
	CustomizationCheckbox = "checkbox" // multi choice
	CustomizationSelect   = "select"   // single dropdown
)

type CustomizationOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PriceModifier float64 `json:"priceModifier"` // signed delta
}

type Customization struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Type          string                `json:"type"`
	Required      bool                  `json:"required"`
	MaxSelections int                   `json:"maxSelections,omitempty"` // checkbox only, 0 = unlimited
	Options       []CustomizationOption `json:"options"`
}

// MenuItem คือข้อมูลอ้างอิงจาก catalog (immutable, ไม่ลง DB)
type MenuItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Prices         []Price         `json:"prices"`
	Category       MenuCategory    `json:"category"`
	IsVegan        bool            `json:"isVegan,omitempty"`
	IsGlutenFree   bool            `json:"isGlutenFree,omitempty"`
	IsSpicy        bool            `json:"isSpicy,omitempty"`
	Customizations []Customization `json:"customizations,omitempty"`
}

// PriceForSize คืนราคาของ size ที่ขอ (พร้อม ok ว่ามีจริงไหม)
func (m *MenuItem) PriceForSize(size string) (Price, bool) {
	for _, p := range m.Prices {
		if p.Size == size {
			return p, true
		}
	}
	return Price{}, false
}

// CustomizationByID หา customization group บนเมนูนี้
func (m *MenuItem) CustomizationByID(id string) (Customization, bool) {
	for _, g := range m.Customizations {
		if g.ID == id {
			return g, true
		}
	}
	return Customization{}, false
}

func (g *Customization) OptionByID(id string) (CustomizationOption, bool) {
	for _, o := range g.Options {
		if o.ID == id {
			return o, true
		}
	}
	return CustomizationOption{}, false
}
