package usecase

import (
	"context"
	"time"

	"lendly/internal/domain/booking"
	"lendly/internal/domain/comment"
	"lendly/internal/domain/item"
	"lendly/internal/domain/request"
	"lendly/internal/domain/user"

	"github.com/google/uuid"
)

// Repository ports. Implemented by internal/infra/repository (Postgres) and
// internal/infra/memstore (in-memory); all admission and visibility policy
// stays in the use cases so the two backends cannot diverge.

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Booking, error)
	// FindByBooker and FindByOwner return bookings ordered by start descending.
	FindByBooker(ctx context.Context, bookerID uuid.UUID) ([]*booking.Booking, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*booking.Booking, error)
	// FindLastApproved returns the APPROVED booking on the item with the
	// greatest end strictly before the given instant; nil when there is none.
	FindLastApproved(ctx context.Context, itemID uuid.UUID, before time.Time) (*booking.Booking, error)
	// FindNextApproved returns the APPROVED booking on the item with the
	// smallest start strictly after the given instant; nil when there is none.
	FindNextApproved(ctx context.Context, itemID uuid.UUID, after time.Time) (*booking.Booking, error)
}

type ItemRepository interface {
	Create(ctx context.Context, i *item.Item) error
	Update(ctx context.Context, i *item.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*item.Item, error)
	FindByRequest(ctx context.Context, requestID uuid.UUID) ([]*item.Item, error)
	// Search matches text against name and description of available items,
	// case-insensitively. Blank text returns no rows.
	Search(ctx context.Context, text string) ([]*item.Item, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]*comment.Comment, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *request.ItemRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*request.ItemRequest, error)
	// FindByRequestor returns requests ordered by created descending.
	FindByRequestor(ctx context.Context, requestorID uuid.UUID) ([]*request.ItemRequest, error)
	// FindAllExcept pages through other users' requests, created descending.
	FindAllExcept(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*request.ItemRequest, error)
}
