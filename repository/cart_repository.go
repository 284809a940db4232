package repository

import (
	"errors"

	"backend/entity"
	"backend/pricing"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// คืน Cart ตาม token (ถ้าไม่มีคืน Cart ว่าง ๆ โดยไม่ error เพื่อให้ FE แสดงได้)
func (r *CartRepository) GetCartWithItems(token string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("token = ?", token).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{Token: token}, nil
	}
	return &c, err
}

func (r *CartRepository) GetOrCreateCart(token string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("token = ?", token).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{Token: token}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// UpsertLine รวม line ที่ LineKey ตรงกัน (qty บวกเพิ่ม, unit price ใช้ค่าที่
// คำนวณใหม่จาก catalog เสมอ ไม่ back-derive จาก total/qty)
func (r *CartRepository) UpsertLine(tx *gorm.DB, cartID uint, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND line_key = ?", cartID, row.LineKey).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		exist.UnitPrice = row.UnitPrice
		exist.TotalPrice = pricing.LineTotal(exist.UnitPrice, exist.Qty)
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	return tx.Create(row).Error
}

// UpdateQty: qty <= 0 ลบ line ทิ้ง, qty > 0 คิด total ใหม่จาก unit price เดิม
func (r *CartRepository) UpdateQty(tx *gorm.DB, token string, itemID uint, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(tx, token, itemID)
	}
	var item entity.CartItem
	err := tx.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.token = ?", itemID, token).
		First(&item).Error
	if err != nil {
		return err
	}
	item.Qty = qty
	item.TotalPrice = pricing.LineTotal(item.UnitPrice, qty)
	return tx.Save(&item).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, token string, itemID uint) error {
	return tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE token = ?)", itemID, token).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, token string) error {
	var c entity.Cart
	if err := tx.Where("token = ?", token).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error
}
