// Package memory holds an in-process ItemRepository used by tests and by
// storefrontctl dry runs. It publishes no events.
package memory

import (
	"context"
	"sync"

	itemdomain "github.com/ghuser/storefront/services/item/domain"
	"github.com/ghuser/storefront/services/item/domain/models"
)

// ItemRepository keeps items in id order.
type ItemRepository struct {
	mu     sync.RWMutex
	items  []*models.Item
	nextID int64
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{nextID: 1}
}

func (r *ItemRepository) List(_ context.Context) ([]*models.Item, error) {
	return r.filter(func(*models.Item) bool { return true }), nil
}

func (r *ItemRepository) ListByMerchant(_ context.Context, merchantID int64) ([]*models.Item, error) {
	return r.filter(func(it *models.Item) bool { return it.MerchantID == merchantID }), nil
}

func (r *ItemRepository) GetByID(_ context.Context, id int64) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		return clone(r.items[i]), nil
	}
	return nil, itemdomain.ErrItemNotFound
}

func (r *ItemRepository) Save(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, clone(item))
	return nil
}

func (r *ItemRepository) Update(_ context.Context, item *models.Item, changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(item.ID)
	if i < 0 {
		return itemdomain.ErrItemNotFound
	}
	stored := r.items[i]
	for _, attr := range changed {
		switch attr {
		case models.AttrName:
			stored.Name = item.Name
		case models.AttrDescription:
			stored.Description = item.Description
		case models.AttrUnitPrice:
			stored.UnitPrice = item.UnitPrice
		case models.AttrMerchantID:
			stored.MerchantID = item.MerchantID
		}
	}
	stored.UpdatedAt = item.UpdatedAt
	*item = *stored
	return nil
}

func (r *ItemRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return itemdomain.ErrItemNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// index must be called with mu held.
func (r *ItemRepository) index(id int64) int {
	for i, it := range r.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (r *ItemRepository) filter(keep func(*models.Item) bool) []*models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Item, 0, len(r.items))
	for _, it := range r.items {
		if keep(it) {
			out = append(out, clone(it))
		}
	}
	return out
}

func clone(it *models.Item) *models.Item {
	c := *it
	return &c
}
