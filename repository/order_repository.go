package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// List คืนทุก order เรียงใหม่สุดก่อน
func (r *OrderRepository) List() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Get(id string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// UpdateStatusGuard เปลี่ยน status แบบมีเงื่อนไข: ทำเฉพาะแถวที่ status ปัจจุบัน
// อยู่ใน from (กัน transition ย้อนหลัง/ชนกัน) คืนจำนวนแถวที่โดน
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, id string, from []entity.OrderStatus, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) CreateDeadLetter(dl *entity.WebhookDeadLetter) error {
	return r.DB.Create(dl).Error
}
