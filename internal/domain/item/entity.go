package item

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("item name cannot be empty")
	ErrEmptyDescription = errors.New("item description cannot be empty")
)

const MaxNameLength = 255

// Item is a listing owned by a user. Availability gates new bookings; it does
// not affect bookings already made.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	requestID   *uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID, now time.Time) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, ErrEmptyName
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(id, ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Update applies a partial edit; nil fields are left untouched.
func (i *Item) Update(name, description *string, available *bool, now time.Time) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" || len(trimmed) > MaxNameLength {
			return ErrEmptyName
		}
		i.name = trimmed
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if trimmed == "" {
			return ErrEmptyDescription
		}
		i.description = trimmed
	}
	if available != nil {
		i.available = *available
	}
	i.updatedAt = now
	return nil
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i *Item) Name() string          { return i.name }
func (i *Item) Description() string   { return i.description }
func (i *Item) Available() bool       { return i.available }
func (i *Item) RequestID() *uuid.UUID { return i.requestID }
func (i *Item) CreatedAt() time.Time  { return i.createdAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }
