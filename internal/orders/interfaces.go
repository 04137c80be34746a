package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db/models"
)

// Repository defines persistence operations for the order ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreatePurchasedModules(ctx context.Context, modules []models.PurchasedModule) error
	FindOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindLatestOrderByCustomer(ctx context.Context, customerID string) (*models.Order, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
}
