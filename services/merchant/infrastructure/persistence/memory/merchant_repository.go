// Package memory holds an in-process MerchantRepository used by tests and
// by storefrontctl dry runs.
package memory

import (
	"context"
	"sync"

	merchantdomain "github.com/ghuser/storefront/services/merchant/domain"
	"github.com/ghuser/storefront/services/merchant/domain/models"
	domainsvcs "github.com/ghuser/storefront/services/merchant/domain/services"
)

// MerchantRepository keeps merchants in insertion (id) order.
type MerchantRepository struct {
	mu        sync.RWMutex
	merchants []*models.Merchant
	nextID    int64
}

func NewMerchantRepository() *MerchantRepository {
	return &MerchantRepository{nextID: 1}
}

func (r *MerchantRepository) List(_ context.Context) ([]*models.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Merchant, len(r.merchants))
	for i, m := range r.merchants {
		out[i] = clone(m)
	}
	return out, nil
}

func (r *MerchantRepository) GetByID(_ context.Context, id int64) (*models.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.ID == id {
			return clone(m), nil
		}
	}
	return nil, merchantdomain.ErrMerchantNotFound
}

func (r *MerchantRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.GetByID(ctx, id)
	return err == nil, nil
}

func (r *MerchantRepository) FindFirstByName(ctx context.Context, query string) (*models.Merchant, error) {
	all, _ := r.FindAllByName(ctx, query)
	if len(all) == 0 {
		return nil, merchantdomain.ErrMerchantNotFound
	}
	return all[0], nil
}

func (r *MerchantRepository) FindAllByName(_ context.Context, query string) ([]*models.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Merchant, 0)
	for _, m := range r.merchants {
		if domainsvcs.NameContains(m.Name, query) {
			out = append(out, clone(m))
		}
	}
	domainsvcs.SortByName(out)
	return out, nil
}

func (r *MerchantRepository) Save(_ context.Context, m *models.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	r.merchants = append(r.merchants, clone(m))
	return nil
}

func clone(m *models.Merchant) *models.Merchant {
	c := *m
	return &c
}
