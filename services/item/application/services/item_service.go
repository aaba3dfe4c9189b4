package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/storefront/pkg/cache"
	"github.com/ghuser/storefront/pkg/logger"
	"github.com/ghuser/storefront/pkg/metrics"
	itemdomain "github.com/ghuser/storefront/services/item/domain"
	"github.com/ghuser/storefront/services/item/domain/models"
	"github.com/ghuser/storefront/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/storefront/services/item/domain/services"
)

// Item operations recorded on storefront_item_operations_total.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Merchants is the merchant context as the item context sees it.
type Merchants interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Cache stores the item read model. *pkgcache.ItemCache satisfies it.
// Set must not replace a newer version, and Delete must leave a marker that
// Set will not overwrite.
type Cache interface {
	Get(ctx context.Context, id int64) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, id int64) error
}

// ItemInput carries the attributes of a new item. Absent attributes arrive
// as zero values.
type ItemInput struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	MerchantID  int64
}

// ItemService orchestrates item reads and writes.
// Event publishing is handled by the repository layer (outbox pattern).
// Single-item reads are served from Redis when a cache is configured.
type ItemService struct {
	repo      repositories.ItemRepository
	merchants Merchants
	cache     Cache
	metrics   *metrics.Metrics
	log       logger.Logger
}

// NewItemService returns an ItemService. cache, m and log may be nil.
func NewItemService(repo repositories.ItemRepository, merchants Merchants, cache Cache, m *metrics.Metrics, log logger.Logger) *ItemService {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemService{repo: repo, merchants: merchants, cache: cache, metrics: m, log: log}
}

// List returns every item ordered by id.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ListByMerchant returns the merchant's items. Returns ErrMerchantNotFound
// when the merchant does not exist.
func (s *ItemService) ListByMerchant(ctx context.Context, merchantID int64) ([]*models.Item, error) {
	ok, err := s.merchants.Exists(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("check merchant: %w", err)
	}
	if !ok {
		return nil, itemdomain.ErrMerchantNotFound
	}
	items, err := s.repo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("list merchant items: %w", err)
	}
	return items, nil
}

// GetByID reads through the cache to Postgres. A miss is not written back
// here: the request has no way to order its write against a concurrent
// update or delete. The worker's Refresh owns cache population.
func (s *ItemService) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, pkgcache.ErrMiss) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// MerchantIDOf returns the id of the merchant that owns item itemID.
func (s *ItemService) MerchantIDOf(ctx context.Context, itemID int64) (int64, error) {
	item, err := s.GetByID(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return item.MerchantID, nil
}

// Create persists a new item. The repository publishes ItemCreatedEvent.
// Returns ErrMerchantMustExist when in.MerchantID names no merchant.
func (s *ItemService) Create(ctx context.Context, in ItemInput) (*models.Item, error) {
	item := models.NewItem(in.Name, in.Description, in.UnitPrice, in.MerchantID)
	if err := s.checkOwner(ctx, item); err != nil {
		s.metrics.ItemOperation(OpCreate, outcome(err))
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		s.metrics.ItemOperation(OpCreate, outcome(err))
		return nil, fmt.Errorf("save item: %w", err)
	}
	s.metrics.ItemOperation(OpCreate, metrics.OutcomeOK)
	s.log.InfoContext(ctx, "item created", "item_id", item.ID, "merchant_id", item.MerchantID)
	return item, nil
}

// Update applies patch to item id. Attributes absent from patch keep their
// value. A patch that changes nothing writes nothing and publishes no event.
func (s *ItemService) Update(ctx context.Context, id int64, patch models.Patch) (*models.Item, error) {
	item, err := s.update(ctx, id, patch)
	s.metrics.ItemOperation(OpUpdate, outcome(err))
	return item, err
}

func (s *ItemService) update(ctx context.Context, id int64, patch models.Patch) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	changed := patch.Apply(item)
	if len(changed) == 0 {
		return item, nil
	}
	if patch.MerchantID != nil {
		if err := s.checkOwner(ctx, item); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, item, changed); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.store(ctx, item)
	s.log.InfoContext(ctx, "item updated", "item_id", id, "changed", changed)
	return item, nil
}

// Delete removes item id. Returns ErrItemNotFound if no matching item exists.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.metrics.ItemOperation(OpDelete, outcome(err))
		return fmt.Errorf("delete item: %w", err)
	}
	s.evict(ctx, id)
	s.metrics.ItemOperation(OpDelete, metrics.OutcomeOK)
	s.log.InfoContext(ctx, "item deleted", "item_id", id)
	return nil
}

// Refresh reloads item id into the cache, evicting it if the item is gone.
// The worker calls it for every item event.
func (s *ItemService) Refresh(ctx context.Context, id int64) error {
	if s.cache == nil {
		return nil
	}
	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, itemdomain.ErrItemNotFound) {
		return s.Evict(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("refresh item: %w", err)
	}
	return s.cache.Set(ctx, toCached(item))
}

// Evict marks item id deleted in the cache so no later Set can restore it.
func (s *ItemService) Evict(ctx context.Context, id int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, id)
}

// store writes item through to the cache. The cache keeps whichever version
// is newest, so racing with the worker's Refresh is harmless. Best effort.
func (s *ItemService) store(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCached(item)); err != nil {
		s.log.WarnContext(ctx, "item cache write failed", "item_id", item.ID, "error", err)
	}
}

// evict is best effort; the worker evicts again when the event arrives.
func (s *ItemService) evict(ctx context.Context, id int64) {
	if err := s.Evict(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache evict failed", "item_id", id, "error", err)
	}
}

func (s *ItemService) checkOwner(ctx context.Context, item *models.Item) error {
	if err := domainsvcs.ValidateItemForSave(item); err != nil {
		return err
	}
	ok, err := s.merchants.Exists(ctx, item.MerchantID)
	if err != nil {
		return fmt.Errorf("check merchant: %w", err)
	}
	if !ok {
		return itemdomain.ErrMerchantMustExist
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, itemdomain.ErrMerchantMustExist):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func toCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		MerchantID:  item.MerchantID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		UnitPrice:   c.UnitPrice,
		MerchantID:  c.MerchantID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
