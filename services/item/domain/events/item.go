package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/services/item/domain/models"
)

// Topics published by the item repository inside the write transaction.
// Consumers subscribe via Bus.Subscribe(ctx, events.TopicItemCreated, ...).
const (
	TopicItemCreated = "item.created"
	TopicItemUpdated = "item.updated"
	TopicItemDeleted = "item.deleted"
)

// Version is the current schema version of every item event payload.
const Version = 1

// ItemCreatedEvent is published after a new Item is persisted.
type ItemCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     int64     `json:"item_id"`
	MerchantID int64     `json:"merchant_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemUpdatedEvent is published after an Item changes. Changed lists the
// attribute names whose value differs from before.
type ItemUpdatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     int64     `json:"item_id"`
	MerchantID int64     `json:"merchant_id"`
	Changed    []string  `json:"changed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published after an Item is removed.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     int64     `json:"item_id"`
	MerchantID int64     `json:"merchant_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewItemCreated(item *models.Item) ItemCreatedEvent {
	return ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    Version,
		ItemID:     item.ID,
		MerchantID: item.MerchantID,
		Name:       item.Name,
		OccurredAt: item.CreatedAt,
	}
}

func NewItemUpdated(item *models.Item, changed []string) ItemUpdatedEvent {
	if changed == nil {
		changed = []string{}
	}
	return ItemUpdatedEvent{
		EventID:    uuid.New(),
		Version:    Version,
		ItemID:     item.ID,
		MerchantID: item.MerchantID,
		Changed:    changed,
		OccurredAt: item.UpdatedAt,
	}
}

func NewItemDeleted(id, merchantID int64) ItemDeletedEvent {
	return ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    Version,
		ItemID:     id,
		MerchantID: merchantID,
		OccurredAt: time.Now().UTC(),
	}
}
