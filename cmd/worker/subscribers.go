package main

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/storefront/pkg/events"
	"github.com/ghuser/storefront/pkg/logger"
	"github.com/ghuser/storefront/pkg/telemetry"
	itemEvents "github.com/ghuser/storefront/services/item/domain/events"
)

// subscriber is the part of events.Bus the worker consumes from.
type subscriber interface {
	Subscribe(ctx context.Context, topic string, handler events.Handler) (<-chan error, error)
}

// itemCacheSync reloads or drops cached items. *itemsvcs.ItemService satisfies it.
type itemCacheSync interface {
	Refresh(ctx context.Context, id int64) error
	Evict(ctx context.Context, id int64) error
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, bus subscriber, items itemCacheSync, log logger.Logger) error {
	handlers := map[string]events.Handler{
		itemEvents.TopicItemCreated: handleItemCreated(items, log),
		itemEvents.TopicItemUpdated: handleItemUpdated(items, log),
		itemEvents.TopicItemDeleted: handleItemDeleted(items, log),
	}

	topics := make([]string, 0, len(handlers))
	for topic, h := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, h)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
				telemetry.CaptureError(ctx, err, map[string]string{"topic": topic})
			}
		}(topic)
		topics = append(topics, topic)
	}

	log.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleItemCreated warms the cache with the stored item.
// Handlers must be idempotent; the bus retries them on failure. Each one
// reloads from Postgres rather than trusting the payload, so redelivered or
// reordered events still converge on the current row.
func handleItemCreated(items itemCacheSync, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[itemEvents.ItemCreatedEvent](msg)
		if err != nil {
			return err
		}
		if err := items.Refresh(ctx, evt.ItemID); err != nil {
			return fmt.Errorf("warm item %d: %w", evt.ItemID, err)
		}
		log.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID, "merchant_id", evt.MerchantID)
		return nil
	}
}

func handleItemUpdated(items itemCacheSync, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[itemEvents.ItemUpdatedEvent](msg)
		if err != nil {
			return err
		}
		if err := items.Refresh(ctx, evt.ItemID); err != nil {
			return fmt.Errorf("refresh item %d: %w", evt.ItemID, err)
		}
		log.InfoContext(ctx, "cache refreshed", "item_id", evt.ItemID, "changed", evt.Changed)
		return nil
	}
}

func handleItemDeleted(items itemCacheSync, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[itemEvents.ItemDeletedEvent](msg)
		if err != nil {
			return err
		}
		if err := items.Evict(ctx, evt.ItemID); err != nil {
			return fmt.Errorf("evict item %d: %w", evt.ItemID, err)
		}
		log.InfoContext(ctx, "cache evicted", "item_id", evt.ItemID)
		return nil
	}
}
