package catalog

import (
	"testing"

	"backend/entity"
)

func TestLoad_ItemLookup(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	it, ok := c.ItemByID("beef-donair")
	if !ok {
		t.Fatal("beef-donair missing from catalog")
	}
	if it.Category != entity.CategoryPitaWraps {
		t.Errorf("expected category assigned from JSON key, got %q", it.Category)
	}
	if _, ok := it.PriceForSize("M"); !ok {
		t.Error("beef-donair has no M price")
	}
	if _, ok := c.ItemByID("ghost-item"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestCategories_FixedOrderAndDisplayNames(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	groups := c.Categories()
	if len(groups) == 0 {
		t.Fatal("no category groups")
	}
	if groups[0].Key != entity.CategoryPitaWraps {
		t.Errorf("expected pita-wraps first, got %q", groups[0].Key)
	}
	for _, g := range groups {
		if g.Name == "" || g.Name == string(g.Key) {
			t.Errorf("category %q missing display name", g.Key)
		}
		if len(g.Items) == 0 {
			t.Errorf("category %q has no items", g.Key)
		}
	}
}

func TestAllItems_SortedAndComplete(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	all := c.AllItems()
	if len(all) < 10 {
		t.Fatalf("suspiciously small catalog: %d items", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("items not sorted by id: %q >= %q", all[i-1].ID, all[i].ID)
		}
	}
}

func TestRequiredCustomizationIsMarked(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	it, ok := c.ItemByID("chicken-shawarma")
	if !ok {
		t.Fatal("chicken-shawarma missing")
	}
	cz, ok := it.CustomizationByID("spice-level")
	if !ok {
		t.Fatal("spice-level customization missing")
	}
	if !cz.Required {
		t.Error("spice-level should be required")
	}
	if cz.Type != entity.CustomizationRadio {
		t.Errorf("expected radio, got %q", cz.Type)
	}
}
