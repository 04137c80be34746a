package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds the order ledger repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// CreateOrder inserts a new order row.
func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// CreatePurchasedModules inserts the order's module snapshot rows.
func (r *repository) CreatePurchasedModules(ctx context.Context, modules []models.PurchasedModule) error {
	if len(modules) == 0 {
		return nil
	}
	for i := range modules {
		if modules[i].ID == uuid.Nil {
			modules[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&modules).Error
}

// FindOrderByID loads one order with its purchased modules.
func (r *repository) FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Modules").
		First(&order, "id = ?", orderID).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindLatestOrderByCustomer returns the customer's most recent order with
// purchased modules and their stored configurations. Newest created_at wins;
// id breaks ties so the result is stable.
func (r *repository) FindLatestOrderByCustomer(ctx context.Context, customerID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Modules").
		Preload("Modules.Configurations").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC").
		First(&order).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies a partial update to one order row.
func (r *repository) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).
		Error
}
