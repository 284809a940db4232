package catalog

import (
	"embed"
	"encoding/json"
	"sort"

	"backend/entity"
)

//go:embed menu.json
var menuFS embed.FS

// Catalog คือ menu อ้างอิงทั้งหมด โหลดครั้งเดียวจาก menu.json ที่ embed มา
type Catalog struct {
	byCategory map[entity.MenuCategory][]entity.MenuItem
	byID       map[string]*entity.MenuItem
}

func Load() (*Catalog, error) {
	raw, err := menuFS.ReadFile("menu.json")
	if err != nil {
		return nil, err
	}
	var data map[entity.MenuCategory][]entity.MenuItem
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	c := &Catalog{
		byCategory: data,
		byID:       make(map[string]*entity.MenuItem),
	}
	for cat := range data {
		items := data[cat]
		for i := range items {
			items[i].Category = cat
			c.byID[items[i].ID] = &items[i]
		}
	}
	return c, nil
}

func (c *Catalog) ItemByID(id string) (*entity.MenuItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

func (c *Catalog) ItemsByCategory(cat entity.MenuCategory) []entity.MenuItem {
	return c.byCategory[cat]
}

func (c *Catalog) AllItems() []entity.MenuItem {
	out := make([]entity.MenuItem, 0, len(c.byID))
	for _, items := range c.byCategory {
		out = append(out, items...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var categoryNames = map[entity.MenuCategory]string{
	entity.CategoryPitaWraps:       "Pita Wraps & Sandwiches",
	entity.CategoryPlatters:        "Platters",
	entity.CategorySpecialPlatters: "Special Platters",
	entity.CategorySalads:          "Salads",
	entity.CategoryDesserts:        "Desserts",
	entity.CategoryBeverages:       "Beverages",
	entity.CategoryDips:            "Dips",
	entity.CategorySides:           "Sides",
	entity.CategoryPies:            "Pies",
}

func CategoryDisplayName(cat entity.MenuCategory) string {
	if name, ok := categoryNames[cat]; ok {
		return name
	}
	return string(cat)
}

type CategoryGroup struct {
	Key   entity.MenuCategory `json:"key"`
	Name  string              `json:"name"`
	Items []entity.MenuItem   `json:"items"`
}

// Categories คืนทุกหมวดเรียงตามลำดับ fix ของร้าน
func (c *Catalog) Categories() []CategoryGroup {
	order := []entity.MenuCategory{
		entity.CategoryPitaWraps,
		entity.CategoryPlatters,
		entity.CategorySpecialPlatters,
		entity.CategorySalads,
		entity.CategoryDesserts,
		entity.CategoryBeverages,
		entity.CategoryDips,
		entity.CategorySides,
		entity.CategoryPies,
	}
	out := make([]CategoryGroup, 0, len(order))
	for _, cat := range order {
		items, ok := c.byCategory[cat]
		if !ok {
			continue
		}
		out = append(out, CategoryGroup{Key: cat, Name: CategoryDisplayName(cat), Items: items})
	}
	return out
}
