package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"barbershop-backend/models"
)

// Models lists every table mirrored by GormBackend, in migration order.
var Models = []interface{}{
	&models.Service{},
	&models.Barber{},
	&models.Client{},
	&models.Booking{},
	&models.ServiceOrder{},
	&models.Transaction{},
	&models.ReminderLog{},
}

// GormBackend mirrors collections to a SQL database. Each save rewrites the
// changed tables inside one database transaction.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// Migrate creates or updates the mirrored tables.
func (b *GormBackend) Migrate() error {
	return b.db.AutoMigrate(Models...)
}

func (b *GormBackend) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	db := b.db.WithContext(ctx)
	if err := db.Find(&snap.Services).Error; err != nil {
		return snap, fmt.Errorf("load services: %w", err)
	}
	if err := db.Find(&snap.Barbers).Error; err != nil {
		return snap, fmt.Errorf("load barbers: %w", err)
	}
	if err := db.Find(&snap.Clients).Error; err != nil {
		return snap, fmt.Errorf("load clients: %w", err)
	}
	if err := db.Order("date, time").Find(&snap.Bookings).Error; err != nil {
		return snap, fmt.Errorf("load bookings: %w", err)
	}
	if err := db.Order("created_at").Find(&snap.Transactions).Error; err != nil {
		return snap, fmt.Errorf("load transactions: %w", err)
	}
	if err := db.Find(&snap.ServiceOrders).Error; err != nil {
		return snap, fmt.Errorf("load service orders: %w", err)
	}
	return snap, nil
}

func (b *GormBackend) Save(ctx context.Context, snap Snapshot, changed []Kind) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range changed {
			var err error
			switch kind {
			case KindServices:
				err = replaceTable(tx, snap.Services, ServiceID)
			case KindBarbers:
				err = replaceTable(tx, snap.Barbers, BarberID)
			case KindClients:
				err = replaceTable(tx, snap.Clients, ClientID)
			case KindBookings:
				err = replaceTable(tx, snap.Bookings, BookingID)
			case KindTransactions:
				err = replaceTable(tx, snap.Transactions, TransactionID)
			case KindServiceOrders:
				err = replaceTable(tx, snap.ServiceOrders, ServiceOrderID)
			}
			if err != nil {
				return fmt.Errorf("save %s: %w", kind, err)
			}
		}
		return nil
	})
}

// replaceTable makes the table hold exactly items: rows missing from items are
// deleted and the rest are upserted.
func replaceTable[T any](tx *gorm.DB, items []T, idOf func(T) string) error {
	var zero T
	if len(items) == 0 {
		return tx.Where("1 = 1").Delete(&zero).Error
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = idOf(it)
	}
	if err := tx.Where("id NOT IN ?", ids).Delete(&zero).Error; err != nil {
		return err
	}
	return tx.Save(&items).Error
}
