// Package testutil provides in-memory fakes and fixtures shared by tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Dan9191/salon-ops/internal/config"
	"github.com/Dan9191/salon-ops/internal/models"
	"github.com/Dan9191/salon-ops/internal/repository"
)

// MemStore is an in-memory implementation of the service store with the
// same ordering as the PostgreSQL repository. Err, when set, is returned by
// every call.
type MemStore struct {
	mu         sync.Mutex
	fixedCosts *models.FixedCosts
	categories map[int64]models.CostCategory
	items      map[int64]models.CostItem
	nextID     int64

	Err error
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		categories: make(map[int64]models.CostCategory),
		items:      make(map[int64]models.CostItem),
	}
}

func (m *MemStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *MemStore) GetFixedCosts(ctx context.Context) (*models.FixedCosts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.fixedCosts == nil {
		return nil, repository.ErrNotFound
	}
	c := *m.fixedCosts
	return &c, nil
}

func (m *MemStore) SaveFixedCosts(ctx context.Context, costs *models.FixedCosts) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.fixedCosts == nil {
		costs.ID = m.id()
	} else {
		costs.ID = m.fixedCosts.ID
	}
	c := *costs
	m.fixedCosts = &c
	return nil
}

func (m *MemStore) ListCategories(ctx context.Context) ([]models.CostCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.CostCategory, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemStore) GetCategory(ctx context.Context, id int64) (*models.CostCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m *MemStore) CreateCategory(ctx context.Context, c *models.CostCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	c.ID = m.id()
	m.categories[c.ID] = *c
	return nil
}

func (m *MemStore) UpdateCategory(ctx context.Context, c *models.CostCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	m.categories[c.ID] = *c
	return nil
}

func (m *MemStore) DeleteCategory(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.categories, id)
	for itemID, item := range m.items {
		if item.CategoryID == id {
			delete(m.items, itemID)
		}
	}
	return nil
}

func (m *MemStore) ListCostItems(ctx context.Context, filter repository.ItemFilter) ([]models.CostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.CostItem{}
	for _, item := range m.items {
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemStore) GetCostItem(ctx context.Context, id int64) (*models.CostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (m *MemStore) CreateCostItem(ctx context.Context, item *models.CostItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.categories[item.CategoryID]; !ok {
		return repository.ErrUnknownCategory
	}
	item.ID = m.id()
	m.items[item.ID] = *item
	return nil
}

func (m *MemStore) UpdateCostItem(ctx context.Context, item *models.CostItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := m.categories[item.CategoryID]; !ok {
		return repository.ErrUnknownCategory
	}
	m.items[item.ID] = *item
	return nil
}

func (m *MemStore) DeleteCostItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// PutItemUnchecked stores an item without checking its category, to model
// a store that lost referential integrity.
func (m *MemStore) PutItemUnchecked(item models.CostItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == 0 {
		item.ID = m.id()
	}
	m.items[item.ID] = item
}

// ErrStoreDown is a canned store failure.
var ErrStoreDown = errors.New("store unavailable")

// Config returns a configuration suitable for tests.
func Config() *config.Config {
	return &config.Config{
		Port:                "0",
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		AdminUsername:       "admin",
		AdminPassword:       "password",
		CORSOrigins:         []string{"*"},
		SMTPHost:            "smtp.test",
		SMTPPort:            "25",
		SenderEmail:         "budget@salon.test",
		AlertRecipients:     []string{"owner@salon.test"},
		BudgetAlertSchedule: "@daily",
	}
}

// Logger returns a logger that records entries instead of printing them.
func Logger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}
