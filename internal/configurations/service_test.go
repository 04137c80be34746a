package configurations

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/db/models"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

type memoryConfigRepo struct {
	rows map[string]models.CustomerModuleConfiguration
}

func newMemoryConfigRepo() *memoryConfigRepo {
	return &memoryConfigRepo{rows: make(map[string]models.CustomerModuleConfiguration)}
}

func (m *memoryConfigRepo) WithTx(tx *gorm.DB) Repository {
	return m
}

func (m *memoryConfigRepo) FindByPurchasedModules(ctx context.Context, purchasedModuleIDs []uuid.UUID) ([]models.CustomerModuleConfiguration, error) {
	wanted := make(map[uuid.UUID]struct{}, len(purchasedModuleIDs))
	for _, id := range purchasedModuleIDs {
		wanted[id] = struct{}{}
	}
	rows := make([]models.CustomerModuleConfiguration, 0, len(m.rows))
	for _, row := range m.rows {
		if _, ok := wanted[row.PurchasedModuleID]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *memoryConfigRepo) Upsert(ctx context.Context, cfg *models.CustomerModuleConfiguration) error {
	m.rows[configKey(cfg.PurchasedModuleID, cfg.ItemID)] = *cfg
	return nil
}

type stubOrderFinder struct {
	order *models.Order
}

func (s *stubOrderFinder) FindLatestOrderByCustomer(ctx context.Context, customerID string) (*models.Order, error) {
	if s.order == nil || s.order.CustomerID != customerID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "configurations-test", Output: io.Discard})
}

func orderWithModules(customerID string, moduleIDs ...string) (*models.Order, map[string]uuid.UUID) {
	order := &models.Order{ID: uuid.New(), CustomerID: customerID}
	pmIDs := make(map[string]uuid.UUID, len(moduleIDs))
	for _, moduleID := range moduleIDs {
		pm := models.PurchasedModule{ID: uuid.New(), OrderID: order.ID, ModuleID: moduleID}
		order.Modules = append(order.Modules, pm)
		pmIDs[moduleID] = pm.ID
	}
	return order, pmIDs
}

func newTestService(t *testing.T, repo Repository, finder orderFinder) Service {
	t.Helper()
	svc, err := NewService(repo, finder, stubTxRunner{}, testLogger())
	require.NoError(t, err)
	return svc
}

func TestSaveFailsWithoutPriorPurchase(t *testing.T) {
	repo := newMemoryConfigRepo()
	svc := newTestService(t, repo, &stubOrderFinder{})

	_, err := svc.SaveModuleConfigurations(context.Background(), "nobody@acme.test", map[string]map[string]ItemState{
		"payments": {"provider_api_key": {Value: "sk", Completed: true}},
	})

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "no purchases found for this customer", typed.Message())
	assert.Empty(t, repo.rows)
}

func TestSaveSkipsModulesNotInOrder(t *testing.T) {
	order, pmIDs := orderWithModules("owner@acme.test", "module_whatsapp_payments")
	repo := newMemoryConfigRepo()
	svc := newTestService(t, repo, &stubOrderFinder{order: order})

	result, err := svc.SaveModuleConfigurations(context.Background(), "owner@acme.test", map[string]map[string]ItemState{
		"payments":     {"merchant_id": {Value: "m-42", Completed: true}},
		"crm":          {"pipeline_stages": {Value: "lead,won", Completed: true}},
		"ghost_module": {"anything": {Value: "x", Completed: false}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SavedModules)
	assert.Equal(t, 1, result.SavedItems)
	assert.ElementsMatch(t, []string{"crm", "ghost_module"}, result.SkippedModules)

	saved, ok := repo.rows[configKey(pmIDs["module_whatsapp_payments"], "merchant_id")]
	require.True(t, ok)
	assert.Equal(t, "m-42", saved.Value)
	assert.True(t, saved.IsCompleted)
	assert.NotNil(t, saved.CompletedAt)
}

func TestSaveCompletedAtTransitions(t *testing.T) {
	order, pmIDs := orderWithModules("owner@acme.test", "module_whatsapp_bot")
	repo := newMemoryConfigRepo()
	svc := newTestService(t, repo, &stubOrderFinder{order: order})
	ctx := context.Background()
	key := configKey(pmIDs["module_whatsapp_bot"], "phone_number")

	// false -> true stamps completed_at
	_, err := svc.SaveModuleConfigurations(ctx, "owner@acme.test", map[string]map[string]ItemState{
		"whatsapp": {"phone_number": {Value: "+34600111222", Completed: true}},
	})
	require.NoError(t, err)
	first := repo.rows[key]
	require.NotNil(t, first.CompletedAt)
	firstStamp := *first.CompletedAt

	// unchanged completed preserves the original stamp
	time.Sleep(5 * time.Millisecond)
	_, err = svc.SaveModuleConfigurations(ctx, "owner@acme.test", map[string]map[string]ItemState{
		"whatsapp": {"phone_number": {Value: "+34600999888", Completed: true}},
	})
	require.NoError(t, err)
	second := repo.rows[key]
	assert.Equal(t, "+34600999888", second.Value)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CompletedAt.Equal(firstStamp), "completed_at must not be restamped")

	// true -> false clears it
	_, err = svc.SaveModuleConfigurations(ctx, "owner@acme.test", map[string]map[string]ItemState{
		"whatsapp": {"phone_number": {Value: "+34600999888", Completed: false}},
	})
	require.NoError(t, err)
	third := repo.rows[key]
	assert.False(t, third.IsCompleted)
	assert.Nil(t, third.CompletedAt)
}

func TestSaveIdempotentReplay(t *testing.T) {
	order, _ := orderWithModules("owner@acme.test", "module_whatsapp_payments")
	repo := newMemoryConfigRepo()
	svc := newTestService(t, repo, &stubOrderFinder{order: order})
	ctx := context.Background()

	payload := map[string]map[string]ItemState{
		"payments": {
			"provider_api_key": {Value: "sk_live_abc", Completed: true},
			"currency":         {Value: "EUR", Completed: false},
		},
	}

	first, err := svc.SaveModuleConfigurations(ctx, "owner@acme.test", payload)
	require.NoError(t, err)
	assert.Equal(t, 2, first.SavedItems)
	snapshot := make(map[string]models.CustomerModuleConfiguration, len(repo.rows))
	for k, v := range repo.rows {
		snapshot[k] = v
	}

	second, err := svc.SaveModuleConfigurations(ctx, "owner@acme.test", payload)
	require.NoError(t, err)
	assert.Equal(t, first.SavedItems, second.SavedItems)
	require.Len(t, repo.rows, 2)
	for k, v := range repo.rows {
		prior := snapshot[k]
		assert.Equal(t, prior.Value, v.Value)
		assert.Equal(t, prior.IsCompleted, v.IsCompleted)
		if prior.CompletedAt == nil {
			assert.Nil(t, v.CompletedAt)
		} else {
			require.NotNil(t, v.CompletedAt)
			assert.True(t, v.CompletedAt.Equal(*prior.CompletedAt))
		}
	}
}

func TestSaveEmptyPayloadIsNoOp(t *testing.T) {
	order, _ := orderWithModules("owner@acme.test", "module_whatsapp_bot")
	repo := newMemoryConfigRepo()
	svc := newTestService(t, repo, &stubOrderFinder{order: order})

	result, err := svc.SaveModuleConfigurations(context.Background(), "owner@acme.test", nil)
	require.NoError(t, err)
	assert.Zero(t, result.SavedItems)
	assert.Empty(t, repo.rows)
}
