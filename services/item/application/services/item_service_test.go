package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/storefront/pkg/cache"
	"github.com/ghuser/storefront/pkg/metrics"
	itemdomain "github.com/ghuser/storefront/services/item/domain"
	"github.com/ghuser/storefront/services/item/domain/models"
	"github.com/ghuser/storefront/services/item/infrastructure/persistence/memory"
)

type fakeMerchants map[int64]bool

func (f fakeMerchants) Exists(_ context.Context, id int64) (bool, error) {
	return f[id], nil
}

// fakeCache follows the ItemCache contract: Set keeps the newest version and
// never overwrites a deletion marker.
type fakeCache struct {
	mu       sync.Mutex
	items    map[int64]*pkgcache.CachedItem
	deleted  map[int64]bool
	getErr   error
	sets     int
	deletes  []int64
	enterSet chan struct{} // if set, Set signals here and then waits on resume
	resume   chan struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[int64]*pkgcache.CachedItem{}, deleted: map[int64]bool{}}
}

func (c *fakeCache) Get(_ context.Context, id int64) (*pkgcache.CachedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	it, ok := c.items[id]
	if !ok {
		return nil, pkgcache.ErrMiss
	}
	return it, nil
}

func (c *fakeCache) Set(_ context.Context, item *pkgcache.CachedItem) error {
	if c.enterSet != nil {
		c.enterSet <- struct{}{}
		<-c.resume
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.deleted[item.ID] {
		return nil
	}
	if cur, ok := c.items[item.ID]; ok && cur.UpdatedAt.After(item.UpdatedAt) {
		return nil
	}
	c.items[item.ID] = item
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.deleted[id] = true
	c.deletes = append(c.deletes, id)
	return nil
}

func (c *fakeCache) has(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[id]
	return ok
}

func (c *fakeCache) get(id int64) *pkgcache.CachedItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[id]
}

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T, cache Cache) (*ItemService, *memory.ItemRepository) {
	t.Helper()
	repo := memory.NewItemRepository()
	return NewItemService(repo, fakeMerchants{1: true, 2: true}, cache, nil, nil), repo
}

func seed(t *testing.T, s *ItemService) *models.Item {
	t.Helper()
	item, err := s.Create(context.Background(), ItemInput{
		Name: "Widget", Description: "A widget", UnitPrice: decimal.RequireFromString("9.99"), MerchantID: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return item
}

func TestCreate(t *testing.T) {
	t.Run("assigns an id", func(t *testing.T) {
		s, _ := newTestService(t, nil)
		item := seed(t, s)
		if item.ID == 0 {
			t.Fatal("expected an assigned id")
		}
	})

	for name, merchantID := range map[string]int64{"unknown merchant": 9, "no merchant": 0} {
		t.Run(name, func(t *testing.T) {
			s, repo := newTestService(t, nil)
			_, err := s.Create(context.Background(), ItemInput{Name: "Widget", MerchantID: merchantID})
			if !errors.Is(err, itemdomain.ErrMerchantMustExist) {
				t.Fatalf("expected ErrMerchantMustExist, got %v", err)
			}
			all, _ := repo.List(context.Background())
			if len(all) != 0 {
				t.Fatalf("expected nothing saved, found %d", len(all))
			}
		})
	}
}

func TestGetByID_ServesFromCache(t *testing.T) {
	cache := newFakeCache()
	cache.items[7] = &pkgcache.CachedItem{ID: 7, Name: "Cached", UnitPrice: decimal.NewFromInt(1), MerchantID: 2}
	s, _ := newTestService(t, cache)

	item, err := s.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Name != "Cached" || item.MerchantID != 2 {
		t.Fatalf("expected the cached item, got %+v", item)
	}
}

func TestGetByID_MissDoesNotWriteCache(t *testing.T) {
	cache := newFakeCache()
	s, _ := newTestService(t, cache)
	item := seed(t, s)

	got, err := s.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Widget" {
		t.Fatalf("unexpected item: %+v", got)
	}
	if cache.sets != 0 || cache.has(item.ID) {
		t.Fatalf("expected no cache write from a read, got %d sets", cache.sets)
	}
}

func TestGetByID_DeletedItemStaysGone(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	s, _ := newTestService(t, cache)
	item := seed(t, s)

	if _, err := s.GetByID(ctx, item.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := s.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if got, err := s.GetByID(ctx, item.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got item=%+v err=%v", got, err)
	}
}

func TestRefresh_LosingRaceWithDeleteDoesNotRestoreItem(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	s, _ := newTestService(t, cache)
	item := seed(t, s)

	cache.enterSet = make(chan struct{})
	cache.resume = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx, item.ID) }()

	// Refresh has read the row and is about to write it.
	<-cache.enterSet
	cache.enterSet = nil
	if err := s.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	close(cache.resume)
	if err := <-done; err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got, err := s.GetByID(ctx, item.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got item=%+v err=%v", got, err)
	}
}

func TestRefresh_OlderReadDoesNotReplaceNewerEntry(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	s, _ := newTestService(t, cache)
	item := seed(t, s)

	cache.enterSet = make(chan struct{})
	cache.resume = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx, item.ID) }()

	<-cache.enterSet
	cache.enterSet = nil
	time.Sleep(time.Millisecond)
	if _, err := s.Update(ctx, item.ID, models.Patch{Name: ptr("Gadget")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	close(cache.resume)
	if err := <-done; err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got := cache.get(item.ID); got == nil || got.Name != "Gadget" {
		t.Fatalf("expected the updated item to stay cached, got %+v", got)
	}
}

func TestGetByID_CacheFailureFallsThrough(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	s, _ := newTestService(t, cache)
	item := seed(t, s)

	got, err := s.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("cache failures must not fail reads, got %v", err)
	}
	if got.Name != "Widget" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	s, _ := newTestService(t, newFakeCache())
	if _, err := s.GetByID(context.Background(), 404); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestListByMerchant(t *testing.T) {
	s, _ := newTestService(t, nil)
	seed(t, s)

	items, err := s.ListByMerchant(context.Background(), 1)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one item, got %d (%v)", len(items), err)
	}
	items, err = s.ListByMerchant(context.Background(), 2)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected no items, got %d (%v)", len(items), err)
	}
	if _, err := s.ListByMerchant(context.Background(), 3); !errors.Is(err, itemdomain.ErrMerchantNotFound) {
		t.Fatalf("expected ErrMerchantNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	t.Run("changes supplied attributes and writes through", func(t *testing.T) {
		cache := newFakeCache()
		s, repo := newTestService(t, cache)
		item := seed(t, s)

		got, err := s.Update(context.Background(), item.ID, models.Patch{Name: ptr("Gadget"), MerchantID: ptr(int64(2))})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "Gadget" || got.MerchantID != 2 || got.Description != "A widget" {
			t.Fatalf("unexpected item: %+v", got)
		}
		stored, _ := repo.GetByID(context.Background(), item.ID)
		if stored.Name != "Gadget" {
			t.Fatalf("expected the change to be stored, got %+v", stored)
		}
		if cached := cache.get(item.ID); cached == nil || cached.Name != "Gadget" {
			t.Fatalf("expected the updated item cached, got %+v", cached)
		}
	})

	t.Run("unchanged patch writes nothing", func(t *testing.T) {
		cache := newFakeCache()
		s, _ := newTestService(t, cache)
		item := seed(t, s)

		got, err := s.Update(context.Background(), item.ID, models.Patch{Name: ptr("Widget")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.UpdatedAt.Equal(item.UpdatedAt) || cache.sets != 0 || len(cache.deletes) != 0 {
			t.Fatalf("expected no write, got UpdatedAt %v, %d sets, evictions %v", got.UpdatedAt, cache.sets, cache.deletes)
		}
	})

	t.Run("unknown merchant", func(t *testing.T) {
		s, repo := newTestService(t, nil)
		item := seed(t, s)

		_, err := s.Update(context.Background(), item.ID, models.Patch{MerchantID: ptr(int64(9))})
		if !errors.Is(err, itemdomain.ErrMerchantMustExist) {
			t.Fatalf("expected ErrMerchantMustExist, got %v", err)
		}
		stored, _ := repo.GetByID(context.Background(), item.ID)
		if stored.MerchantID != 1 {
			t.Fatalf("owner must not change, got %d", stored.MerchantID)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		s, _ := newTestService(t, nil)
		if _, err := s.Update(context.Background(), 5, models.Patch{Name: ptr("x")}); !errors.Is(err, itemdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	cache := newFakeCache()
	s, _ := newTestService(t, cache)
	item := seed(t, s)

	if err := s.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.deletes) != 1 {
		t.Fatalf("expected one eviction, got %v", cache.deletes)
	}
	if err := s.Delete(context.Background(), item.ID); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	cache := newFakeCache()
	s, repo := newTestService(t, cache)
	item := seed(t, s)

	if err := s.Refresh(context.Background(), item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cache.has(item.ID) {
		t.Fatal("expected refresh to cache the item")
	}

	if err := repo.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Refresh(context.Background(), item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.has(item.ID) {
		t.Fatal("expected refresh of a deleted item to evict it")
	}
}

func TestRefresh_WithoutCache(t *testing.T) {
	s, _ := newTestService(t, nil)
	if err := s.Refresh(context.Background(), 1); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestItemOperationsAreCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewItemService(memory.NewItemRepository(), fakeMerchants{1: true}, nil, metrics.New(reg), nil)
	ctx := context.Background()

	item, _ := s.Create(ctx, ItemInput{Name: "Widget", MerchantID: 1})
	_, _ = s.Create(ctx, ItemInput{Name: "Widget", MerchantID: 2})
	_, _ = s.Update(ctx, item.ID, models.Patch{Name: ptr("Gadget")})
	_ = s.Delete(ctx, item.ID)
	_ = s.Delete(ctx, item.ID)

	expected := `
# HELP storefront_item_operations_total Item operations by kind and outcome.
# TYPE storefront_item_operations_total counter
storefront_item_operations_total{operation="create",outcome="invalid"} 1
storefront_item_operations_total{operation="create",outcome="ok"} 1
storefront_item_operations_total{operation="delete",outcome="not_found"} 1
storefront_item_operations_total{operation="delete",outcome="ok"} 1
storefront_item_operations_total{operation="update",outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "storefront_item_operations_total"); err != nil {
		t.Fatal(err)
	}
}
