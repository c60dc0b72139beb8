package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyDecided = errors.New("booking already decided")

// Booking is a time-bounded reservation of an item by a booker. It holds
// foreign identifiers only; it never back-references item or user records.
type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	interval  Interval
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a WAITING booking. The interval must be structurally
// valid and must not start in the past relative to now.
func NewBooking(itemID, bookerID uuid.UUID, interval Interval, now time.Time) (*Booking, error) {
	if err := interval.ValidateNotPast(now); err != nil {
		return nil, err
	}
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		interval:  interval,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a booking from stored state without re-running
// creation-time validation.
func Reconstruct(id, itemID, bookerID uuid.UUID, start, end time.Time, status Status, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		interval:  Interval{start: start, end: end},
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Decide moves a WAITING booking to APPROVED or REJECTED. Both outcomes are
// terminal; deciding twice fails.
func (b *Booking) Decide(approve bool, now time.Time) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approve {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	b.updatedAt = now
	return nil
}

// MatchesState reports whether the booking falls into the given query bucket
// at instant now.
func (b *Booking) MatchesState(state State, now time.Time) bool {
	switch state {
	case StateAll:
		return true
	case StateCurrent:
		return b.interval.Contains(now)
	case StatePast:
		return b.interval.EndedBefore(now)
	case StateFuture:
		return b.interval.StartsAfter(now)
	case StateWaiting:
		return b.status == StatusWaiting
	case StateRejected:
		return b.status == StatusRejected
	default:
		return false
	}
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) ItemID() uuid.UUID   { return b.itemID }
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }
func (b *Booking) Interval() Interval  { return b.interval }
func (b *Booking) Start() time.Time    { return b.interval.Start() }
func (b *Booking) End() time.Time      { return b.interval.End() }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
