// Package migrations applies the order schema. Intended to replace
// adapter-level automigrate in deployments that manage schema centrally.
package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the orders bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter: one row per order, a
// unique composite index on (customer_id, order_id), and a non-unique
// customer_id index backing the list operation.
type orderRecord struct {
	ID                int64     `gorm:"primaryKey;column:id"`
	OrderID           string    `gorm:"column:order_id;type:varchar(36);uniqueIndex:idx_orders_customer_order"`
	CustomerID        string    `gorm:"column:customer_id;type:varchar(36);index;uniqueIndex:idx_orders_customer_order"`
	CustomerFirstName string    `gorm:"column:customer_first_name"`
	CustomerLastName  string    `gorm:"column:customer_last_name"`
	ArtistID          string    `gorm:"column:artist_id;type:varchar(36)"`
	ArtistName        string    `gorm:"column:artist_name"`
	AlbumID           string    `gorm:"column:album_id;type:varchar(36)"`
	AlbumTitle        string    `gorm:"column:album_title"`
	AlbumCondition    string    `gorm:"column:album_condition;type:varchar(32)"`
	StoreID           string    `gorm:"column:store_id;type:varchar(36)"`
	OwnerName         string    `gorm:"column:owner_name"`
	ManagerName       string    `gorm:"column:manager_name"`
	OrderDate         time.Time `gorm:"column:order_date"`
	OrderStatus       string    `gorm:"column:order_status;type:varchar(32)"`
	OrderPrice        float64   `gorm:"column:order_price"`
	PaymentMethod     string    `gorm:"column:payment_method;type:varchar(32)"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }
