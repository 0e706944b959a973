package orders

import (
	"errors"

	"github.com/ksred/open-orders-api/internal/types"
	"gorm.io/gorm"
)

// Database is the authoritative order store. It is only mutated by the
// modify and cancel commits; every derived view recomputes from ListOrders.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// ListOrders returns every open order in seed order.
func (d *Database) ListOrders() ([]types.Order, error) {
	var orders []types.Order
	if err := d.db.Order("order_id asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *Database) GetOrder(orderID int) (*types.Order, error) {
	var order types.Order
	if err := d.db.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (d *Database) SaveOrder(order *types.Order) error {
	return d.db.Save(order).Error
}

// DeleteOrder removes the order with the given ID. Deleting an ID that is
// already gone is a no-op, which makes the cancel commit idempotent.
func (d *Database) DeleteOrder(orderID int) error {
	return d.db.Unscoped().Where("order_id = ?", orderID).Delete(&types.Order{}).Error
}

// SeedOrders loads the sample orders into an empty store. Seeding an already
// seeded store is a no-op so restarts of the handler wiring stay safe.
func (d *Database) SeedOrders(orders []types.Order) error {
	var count int64
	if err := d.db.Model(&types.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range orders {
		if err := d.db.Create(&orders[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
