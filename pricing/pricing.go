// Package pricing คำนวณราคาต่อ line จาก size + customization modifiers
package pricing

import (
	"errors"
	"fmt"
	"math"

	"backend/entity"
)

// RoundCents ปัดเป็นทศนิยม 2 ตำแหน่ง (x*100 → round → /100) กัน floating-point drift
func RoundCents(x float64) float64 {
	return math.Round(x*100) / 100
}

// Cents แปลงจำนวนเงินเป็นหน่วยสตางค์/เซนต์สำหรับ Stripe
func Cents(x float64) int64 {
	return int64(math.Round(x * 100))
}

// UnitPrice = size.price + ผลรวม modifier ของทุก option ที่เลือก
// checkbox บวกทุกตัวที่เลือก, radio/select บวกตัวเดียว
// ไม่มี floor ราคาติดลบ — modifier ติดลบกดราคาต่ำกว่า size ได้
func UnitPrice(item *entity.MenuItem, size entity.Price, selections entity.SelectionMap) float64 {
	price := size.Price
	for _, group := range item.Customizations {
		selected, ok := selections[group.ID]
		if !ok {
			continue
		}
		for _, optID := range selected {
			if opt, ok := group.OptionByID(optID); ok {
				price += opt.PriceModifier
			}
		}
	}
	return RoundCents(price)
}

// LineTotal = unit × qty ปัดแยกอีกรอบ
func LineTotal(unit float64, qty int) float64 {
	return RoundCents(unit * float64(qty))
}

// ValidateSelections ตรวจว่า selections ใช้ได้กับเมนูนี้จริง
// - ทุก group/option ต้องมีอยู่บนเมนู
// - radio/select เลือกได้ค่าเดียว, radio ที่ required ต้องเลือก
// - checkbox เกิน maxSelections ไม่ได้
func ValidateSelections(item *entity.MenuItem, selections entity.SelectionMap) error {
	for groupID, optIDs := range selections {
		group, ok := item.CustomizationByID(groupID)
		if !ok {
			return fmt.Errorf("unknown customization %q", groupID)
		}
		for _, optID := range optIDs {
			if _, ok := group.OptionByID(optID); !ok {
				return fmt.Errorf("unknown option %q for %q", optID, groupID)
			}
		}
		switch group.Type {
		case entity.CustomizationRadio, entity.CustomizationSelect:
			if len(optIDs) > 1 {
				return fmt.Errorf("customization %q allows one selection", groupID)
			}
		case entity.CustomizationCheckbox:
			if group.MaxSelections > 0 && len(optIDs) > group.MaxSelections {
				return fmt.Errorf("customization %q allows at most %d selections", groupID, group.MaxSelections)
			}
		}
	}
	for _, group := range item.Customizations {
		if !group.Required {
			continue
		}
		if len(selections[group.ID]) == 0 {
			return errors.New("customization " + group.ID + " is required")
		}
	}
	return nil
}
