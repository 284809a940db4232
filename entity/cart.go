package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// SelectionMap เก็บตัวเลือก customization ของ line หนึ่ง (group id -> option ids)
// radio/select มีค่าเดียว, checkbox มีได้หลายค่า
type SelectionMap map[string][]string

func (s SelectionMap) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SelectionMap) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*s = SelectionMap{}
		return nil
	default:
		return errors.New("unsupported selection column type")
	}
	if len(b) == 0 {
		*s = SelectionMap{}
		return nil
	}
	return json.Unmarshal(b, s)
}

type Cart struct {
	gorm.Model
	Token string `json:"token" gorm:"uniqueIndex"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CartItem หนึ่ง line ในตะกร้า
// LineKey คือ hash รวม menu+size+selections+note ใช้ merge line ที่หน้าตาเหมือนกัน
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	LineKey    string `json:"-" gorm:"index"`
	MenuItemID string `json:"menuItemId"`
	ItemName   string `json:"itemName"`
	Size       string `json:"size"`

	Qty        int     `json:"qty"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Note       string  `json:"note"`

	Selections SelectionMap `json:"selections" gorm:"type:text"`
}
