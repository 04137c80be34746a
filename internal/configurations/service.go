package configurations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/internal/catalog"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db/models"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderFinder interface {
	FindLatestOrderByCustomer(ctx context.Context, customerID string) (*models.Order, error)
}

// ItemState is the customer-supplied state for one checklist item.
type ItemState struct {
	Value     string
	Completed bool
}

// SaveResult reports what a batch save actually wrote.
type SaveResult struct {
	SavedModules   int      `json:"saved_modules"`
	SavedItems     int      `json:"saved_items"`
	SkippedModules []string `json:"skipped_modules,omitempty"`
}

// Service defines the configuration store operations.
type Service interface {
	SaveModuleConfigurations(ctx context.Context, customerID string, payload map[string]map[string]ItemState) (*SaveResult, error)
}

type service struct {
	repo   Repository
	orders orderFinder
	tx     txRunner
	logg   *logger.Logger
}

// NewService builds the configuration service with the required dependencies.
func NewService(repo Repository, orders orderFinder, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("configurations repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:   repo,
		orders: orders,
		tx:     tx,
		logg:   logg,
	}, nil
}

// SaveModuleConfigurations upserts the payload against the customer's most
// recent order in one transaction. Modules absent from that order are skipped
// because the configurator may send a superset; a customer with no order at
// all is a hard failure, configuration cannot precede purchase.
//
// completed_at is stamped on a false→true transition, cleared on true→false,
// and preserved when the flag does not change, so replaying an identical
// payload leaves the stored state untouched.
func (s *service) SaveModuleConfigurations(ctx context.Context, customerID string, payload map[string]map[string]ItemState) (*SaveResult, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	order, err := s.orders.FindLatestOrderByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no purchases found for this customer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest order")
	}

	purchasedByModule := make(map[string]models.PurchasedModule, len(order.Modules))
	for _, pm := range order.Modules {
		purchasedByModule[pm.ModuleID] = pm
	}

	type pendingWrite struct {
		purchasedModuleID uuid.UUID
		itemID            string
		state             ItemState
	}

	writes := make([]pendingWrite, 0)
	involved := make([]uuid.UUID, 0, len(payload))
	involvedSeen := make(map[uuid.UUID]struct{})
	skipped := make([]string, 0)
	savedModules := 0

	for _, configuratorID := range sortedKeys(payload) {
		canonical, ok := catalog.Resolve(configuratorID)
		if !ok {
			skipped = append(skipped, configuratorID)
			continue
		}
		pm, ok := purchasedByModule[canonical]
		if !ok {
			skipped = append(skipped, configuratorID)
			continue
		}

		items := payload[configuratorID]
		if len(items) == 0 {
			continue
		}
		savedModules++
		if _, dup := involvedSeen[pm.ID]; !dup {
			involvedSeen[pm.ID] = struct{}{}
			involved = append(involved, pm.ID)
		}
		for _, itemID := range sortedKeys(items) {
			writes = append(writes, pendingWrite{
				purchasedModuleID: pm.ID,
				itemID:            itemID,
				state:             items[itemID],
			})
		}
	}

	result := &SaveResult{
		SavedModules:   savedModules,
		SavedItems:     len(writes),
		SkippedModules: skipped,
	}
	if len(writes) == 0 {
		return result, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByPurchasedModules(ctx, involved)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stored configurations")
		}
		prior := make(map[string]models.CustomerModuleConfiguration, len(existing))
		for _, row := range existing {
			prior[configKey(row.PurchasedModuleID, row.ItemID)] = row
		}

		now := time.Now().UTC()
		for _, write := range writes {
			row := models.CustomerModuleConfiguration{
				PurchasedModuleID: write.purchasedModuleID,
				ItemID:            write.itemID,
				Value:             write.state.Value,
				IsCompleted:       write.state.Completed,
			}
			before, existed := prior[configKey(write.purchasedModuleID, write.itemID)]
			switch {
			case write.state.Completed && existed && before.IsCompleted:
				row.CompletedAt = before.CompletedAt
			case write.state.Completed:
				stamp := now
				row.CompletedAt = &stamp
			default:
				row.CompletedAt = nil
			}
			if err := repo.Upsert(ctx, &row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert configuration")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithCustomerID(ctx, customerID)
	s.logg.Info(ctx, fmt.Sprintf("saved %d checklist items across %d modules", result.SavedItems, result.SavedModules))
	return result, nil
}

func configKey(purchasedModuleID uuid.UUID, itemID string) string {
	return purchasedModuleID.String() + "|" + itemID
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
