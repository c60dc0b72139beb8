package builder

import (
	"time"

	"lendly/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	now      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		itemID:   uuid.New(),
		bookerID: uuid.New(),
		start:    now.Add(24 * time.Hour),
		end:      now.Add(48 * time.Hour),
		now:      now,
	}
}

func (b *BookingBuilder) WithItem(itemID uuid.UUID) *BookingBuilder {
	b.itemID = itemID
	return b
}

func (b *BookingBuilder) WithBooker(bookerID uuid.UUID) *BookingBuilder {
	b.bookerID = bookerID
	return b
}

func (b *BookingBuilder) WithInterval(start, end time.Time) *BookingBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.now = now
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	interval, err := booking.NewInterval(b.start, b.end)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.itemID, b.bookerID, interval, b.now)
}

func (b *BookingBuilder) MustBuild() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

// MustBuildWithStatus reconstructs a booking in the given status, bypassing
// creation-time validation so past intervals can be set up.
func (b *BookingBuilder) MustBuildWithStatus(status booking.Status) *booking.Booking {
	return booking.Reconstruct(
		uuid.New(), b.itemID, b.bookerID,
		b.start, b.end, status,
		b.now, b.now,
	)
}
