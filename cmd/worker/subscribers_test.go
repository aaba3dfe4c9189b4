package main

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/storefront/pkg/events"
	"github.com/ghuser/storefront/pkg/logger"
	itemEvents "github.com/ghuser/storefront/services/item/domain/events"
)

type recordingSync struct {
	mu        sync.Mutex
	refreshed []int64
	evicted   []int64
	err       error
}

func (r *recordingSync) Refresh(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshed = append(r.refreshed, id)
	return r.err
}

func (r *recordingSync) Evict(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evicted = append(r.evicted, id)
	return r.err
}

type fakeBus struct {
	handlers map[string]events.Handler
}

func (b *fakeBus) Subscribe(_ context.Context, topic string, h events.Handler) (<-chan error, error) {
	b.handlers[topic] = h
	ch := make(chan error)
	close(ch)
	return ch, nil
}

func mustMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	msg, err := events.NewMessage(context.Background(), payload)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	return msg
}

func TestRegisterSubscribers_AllItemTopics(t *testing.T) {
	bus := &fakeBus{handlers: map[string]events.Handler{}}
	if err := registerSubscribers(context.Background(), bus, &recordingSync{}, logger.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var topics []string
	for topic := range bus.handlers {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	want := []string{itemEvents.TopicItemCreated, itemEvents.TopicItemDeleted, itemEvents.TopicItemUpdated}
	if len(topics) != len(want) {
		t.Fatalf("expected topics %v, got %v", want, topics)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("expected topics %v, got %v", want, topics)
		}
	}
}

func TestItemHandlers(t *testing.T) {
	rec := &recordingSync{}
	ctx := context.Background()

	if err := handleItemCreated(rec, logger.Nop())(ctx, mustMessage(t, itemEvents.ItemCreatedEvent{ItemID: 1})); err != nil {
		t.Fatalf("created: %v", err)
	}
	if err := handleItemUpdated(rec, logger.Nop())(ctx, mustMessage(t, itemEvents.ItemUpdatedEvent{ItemID: 2})); err != nil {
		t.Fatalf("updated: %v", err)
	}
	if err := handleItemDeleted(rec, logger.Nop())(ctx, mustMessage(t, itemEvents.ItemDeletedEvent{ItemID: 3})); err != nil {
		t.Fatalf("deleted: %v", err)
	}

	if len(rec.refreshed) != 2 || rec.refreshed[0] != 1 || rec.refreshed[1] != 2 {
		t.Fatalf("unexpected refreshes: %v", rec.refreshed)
	}
	if len(rec.evicted) != 1 || rec.evicted[0] != 3 {
		t.Fatalf("unexpected evictions: %v", rec.evicted)
	}
}

func TestItemHandlers_ReturnErrorsForRetry(t *testing.T) {
	boom := errors.New("redis down")
	rec := &recordingSync{err: boom}

	err := handleItemCreated(rec, logger.Nop())(context.Background(), mustMessage(t, itemEvents.ItemCreatedEvent{ItemID: 1}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected the cache error, got %v", err)
	}

	bad := message.NewMessage("1", []byte("not json"))
	if err := handleItemDeleted(rec, logger.Nop())(context.Background(), bad); err == nil {
		t.Fatal("expected a decode error")
	}
}
