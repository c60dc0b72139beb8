package response

import (
	"time"

	"lendly/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"itemId"`
	BookerID  uuid.UUID `json:"bookerId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingSummaryResponse is the condensed view embedded in owner item views.
type BookingSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		Start:     b.Start(),
		End:       b.End(),
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func FromBookings(bs []*booking.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}

func FromBookingSummary(b *booking.Booking) *BookingSummaryResponse {
	if b == nil {
		return nil
	}
	return &BookingSummaryResponse{
		ID:       b.ID(),
		BookerID: b.BookerID(),
		Start:    b.Start(),
		End:      b.End(),
	}
}
