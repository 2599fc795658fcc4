package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/musicstore/orders-api/internal/orders/domain"
	"github.com/musicstore/orders-api/internal/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM-mapped columns. The
// three upstream snapshots are denormalized into flat columns; there are no
// foreign keys to the upstream services.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&orderRecord{}); err != nil {
			log.Printf("postgres repository migration failed: %v", err)
		}
	}
	return repo
}

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

func newOrderRecord(o *domain.Order) orderRecord {
	return orderRecord{
		ID:                o.ID,
		OrderID:           o.OrderID,
		CustomerID:        o.Customer.CustomerID,
		CustomerFirstName: o.Customer.FirstName,
		CustomerLastName:  o.Customer.LastName,
		ArtistID:          o.Album.ArtistID,
		ArtistName:        o.Album.ArtistName,
		AlbumID:           o.Album.AlbumID,
		AlbumTitle:        o.Album.AlbumTitle,
		AlbumCondition:    string(o.Album.Condition),
		StoreID:           o.Store.StoreID,
		OwnerName:         o.Store.OwnerName,
		ManagerName:       o.Store.ManagerName,
		OrderDate:         o.OrderDate,
		OrderStatus:       string(o.OrderStatus),
		OrderPrice:        o.OrderPrice,
		PaymentMethod:     string(o.PaymentMethod),
	}
}

func toDomainOrder(rec *orderRecord) *domain.Order {
	return &domain.Order{
		ID:      rec.ID,
		OrderID: rec.OrderID,
		Album: domain.AlbumSnapshot{
			ArtistID:   rec.ArtistID,
			ArtistName: rec.ArtistName,
			AlbumID:    rec.AlbumID,
			AlbumTitle: rec.AlbumTitle,
			Condition:  domain.ParseCondition(rec.AlbumCondition),
		},
		Customer: domain.CustomerSnapshot{
			CustomerID: rec.CustomerID,
			FirstName:  rec.CustomerFirstName,
			LastName:   rec.CustomerLastName,
		},
		Store: domain.StoreSnapshot{
			StoreID:     rec.StoreID,
			OwnerName:   rec.OwnerName,
			ManagerName: rec.ManagerName,
		},
		OrderDate:     rec.OrderDate,
		OrderStatus:   domain.OrderStatus(rec.OrderStatus),
		OrderPrice:    rec.OrderPrice,
		PaymentMethod: domain.PaymentMethod(rec.PaymentMethod),
	}
}

// Save inserts or replaces an order aggregate keyed on (customer_id, order_id).
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := newOrderRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "order_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"customer_first_name": record.CustomerFirstName,
				"customer_last_name":  record.CustomerLastName,
				"artist_id":           record.ArtistID,
				"artist_name":         record.ArtistName,
				"album_id":            record.AlbumID,
				"album_title":         record.AlbumTitle,
				"album_condition":     record.AlbumCondition,
				"store_id":            record.StoreID,
				"owner_name":          record.OwnerName,
				"manager_name":        record.ManagerName,
				"order_date":          record.OrderDate,
				"order_status":        record.OrderStatus,
				"order_price":         record.OrderPrice,
				"payment_method":      record.PaymentMethod,
				"updated_at":          gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByCustomerAndOrderID(ctx, order.Customer.CustomerID, order.OrderID)
}

// GetByCustomerAndOrderID fetches one order by its composite key.
func (r *Repository) GetByCustomerAndOrderID(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).
		First(&record, "customer_id = ? AND order_id = ?", customerID, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toDomainOrder(&record), nil
}

// ListByCustomerID returns every order owned by the customer.
func (r *Repository) ListByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, toDomainOrder(&records[i]))
	}
	return orders, nil
}

// Delete removes one order by its composite key.
func (r *Repository) Delete(ctx context.Context, customerID, orderID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND order_id = ?", customerID, orderID).
		Delete(&orderRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
