package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db/models"
)

// Reader exposes the read-only catalog operations the order and configuration
// services depend on.
type Reader interface {
	ListActiveModules(ctx context.Context) ([]models.Module, error)
	FindModuleByID(ctx context.Context, id string) (*models.Module, error)
	FindModulesByIDs(ctx context.Context, ids []string) ([]models.Module, error)
	ListItemsForModule(ctx context.Context, moduleID string) ([]models.ModuleItem, error)
	ListItemsForModules(ctx context.Context, moduleIDs []string) ([]models.ModuleItem, error)
}

// Repository reads the seeded module catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListActiveModules returns all purchasable modules with their items.
func (r *Repository) ListActiveModules(ctx context.Context) ([]models.Module, error) {
	var rows []models.Module
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindModuleByID loads one module with its ordered items.
func (r *Repository) FindModuleByID(ctx context.Context, id string) (*models.Module, error) {
	var module models.Module
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&module, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// FindModulesByIDs loads the modules for a resolved selection. Missing ids
// are simply absent from the result.
func (r *Repository) FindModulesByIDs(ctx context.Context, ids []string) ([]models.Module, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Module
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).
		Error
	return rows, err
}

// ListItemsForModule returns the module's configuration items in display order.
func (r *Repository) ListItemsForModule(ctx context.Context, moduleID string) ([]models.ModuleItem, error) {
	var rows []models.ModuleItem
	err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("display_order ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListItemsForModules returns items for several modules in one query, ordered
// per module by display order.
func (r *Repository) ListItemsForModules(ctx context.Context, moduleIDs []string) ([]models.ModuleItem, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	var rows []models.ModuleItem
	err := r.db.WithContext(ctx).
		Where("module_id IN ?", moduleIDs).
		Order("module_id ASC, display_order ASC").
		Find(&rows).
		Error
	return rows, err
}
