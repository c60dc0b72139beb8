package builder

import (
	"time"

	"lendly/internal/domain/item"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	requestID   *uuid.UUID
	now         time.Time
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ownerID:     uuid.New(),
		name:        "Cordless drill",
		description: "18V cordless drill with two batteries",
		available:   true,
		now:         time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ItemBuilder) WithOwner(ownerID uuid.UUID) *ItemBuilder {
	b.ownerID = ownerID
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.name = name
	return b
}

func (b *ItemBuilder) WithDescription(description string) *ItemBuilder {
	b.description = description
	return b
}

func (b *ItemBuilder) WithAvailable(available bool) *ItemBuilder {
	b.available = available
	return b
}

func (b *ItemBuilder) WithRequestID(requestID uuid.UUID) *ItemBuilder {
	b.requestID = &requestID
	return b
}

func (b *ItemBuilder) BuildDomain() (*item.Item, error) {
	return item.NewItem(b.ownerID, b.name, b.description, b.available, b.requestID, b.now)
}

func (b *ItemBuilder) MustBuild() *item.Item {
	i, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return i
}
