package configurations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db/models"
)

// Repository defines persistence operations for the configuration store.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByPurchasedModules(ctx context.Context, purchasedModuleIDs []uuid.UUID) ([]models.CustomerModuleConfiguration, error)
	Upsert(ctx context.Context, cfg *models.CustomerModuleConfiguration) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the configuration store repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// FindByPurchasedModules loads all stored configuration rows for a set of
// purchased modules.
func (r *repository) FindByPurchasedModules(ctx context.Context, purchasedModuleIDs []uuid.UUID) ([]models.CustomerModuleConfiguration, error) {
	if len(purchasedModuleIDs) == 0 {
		return nil, nil
	}
	var rows []models.CustomerModuleConfiguration
	err := r.db.WithContext(ctx).
		Where("purchased_module_id IN ?", purchasedModuleIDs).
		Find(&rows).
		Error
	return rows, err
}

// Upsert inserts or overwrites one configuration row keyed by
// (purchased_module_id, item_id). The uniqueness constraint makes concurrent
// saves for the same item collapse to last-writer-wins instead of duplicating.
func (r *repository) Upsert(ctx context.Context, cfg *models.CustomerModuleConfiguration) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "purchased_module_id"},
				{Name: "item_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value", "is_completed", "completed_at", "updated_at"}),
		}).
		Create(cfg).
		Error
}
