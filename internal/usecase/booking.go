package usecase

import (
	"context"
	"sort"
	"time"

	"lendly/internal/domain/booking"
	"lendly/internal/infra"
	"lendly/internal/metrics"
	"lendly/internal/pkg/clock"
	"lendly/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	ItemID uuid.UUID
	Start  time.Time
	End    time.Time
}

// ItemBookingSummary carries the closest approved bookings around now for a
// single item. Either side may be nil.
type ItemBookingSummary struct {
	Last *booking.Booking
	Next *booking.Booking
}

type BookingUseCase interface {
	Create(ctx context.Context, bookerID uuid.UUID, input CreateBookingInput) (*booking.Booking, error)
	Decide(ctx context.Context, deciderID uuid.UUID, bookingID uuid.UUID, approve bool) (*booking.Booking, error)
	GetByID(ctx context.Context, requesterID uuid.UUID, bookingID uuid.UUID) (*booking.Booking, error)
	ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.State) ([]*booking.Booking, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, state booking.State) ([]*booking.Booking, error)
	Summary(ctx context.Context, itemID uuid.UUID) (ItemBookingSummary, error)
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	itemRepo    ItemRepository
	userRepo    UserRepository
	clock       clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	clk clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		clock:       clk,
	}
}

// Create admits a booking request. Preconditions are checked in a fixed
// order: booker exists, item exists, item is available, booker is not the
// owner, the interval is valid and not in the past, and the interval does
// not overlap any APPROVED booking on the item. The first failure wins.
func (u *bookingUseCaseImpl) Create(ctx context.Context, bookerID uuid.UUID, input CreateBookingInput) (*booking.Booking, error) {
	if _, err := u.userRepo.FindByID(ctx, bookerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to load booker")
	}

	it, err := u.itemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, errs.Wrap(err, "failed to load item")
	}
	if !it.Available() {
		return nil, errs.Wrapf(ErrItemUnavailable, "item %s", it.ID())
	}
	if it.IsOwnedBy(bookerID) {
		return nil, errs.Wrapf(ErrForbidden, "owner cannot book own item")
	}

	interval, err := booking.NewInterval(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(input.ItemID, bookerID, interval, u.clock.Now())
	if err != nil {
		return nil, err
	}

	existing, err := u.bookingRepo.FindByItem(ctx, input.ItemID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load item bookings")
	}
	for _, other := range existing {
		if other.Status() == booking.StatusApproved && interval.Overlaps(other.Interval()) {
			return nil, errs.Wrapf(ErrBookingConflict, "overlaps booking %s", other.ID())
		}
	}

	if err := u.bookingRepo.Create(ctx, b); err != nil {
		return nil, errs.Wrap(err, "failed to persist booking")
	}
	metrics.BookingsCreated.Inc()
	return b, nil
}

// Decide approves or rejects a waiting booking. Only the owner of the booked
// item may decide, and only while the booking is still WAITING.
func (u *bookingUseCaseImpl) Decide(ctx context.Context, deciderID uuid.UUID, bookingID uuid.UUID, approve bool) (*booking.Booking, error) {
	b, err := u.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := u.itemRepo.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load booked item")
	}
	if !it.IsOwnedBy(deciderID) {
		return nil, errs.Wrapf(ErrForbidden, "only the item owner may decide")
	}

	if err := b.Decide(approve, u.clock.Now()); err != nil {
		return nil, err
	}
	if err := u.bookingRepo.UpdateStatus(ctx, b); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, errs.Mark(err, booking.ErrAlreadyDecided)
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Wrap(err, "failed to persist decision")
	}
	if approve {
		metrics.BookingsApproved.Inc()
	} else {
		metrics.BookingsRejected.Inc()
	}
	return b, nil
}

// GetByID returns the booking to its booker or the owner of the booked item;
// anyone else is denied.
func (u *bookingUseCaseImpl) GetByID(ctx context.Context, requesterID uuid.UUID, bookingID uuid.UUID) (*booking.Booking, error) {
	b, err := u.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID() == requesterID {
		return b, nil
	}
	it, err := u.itemRepo.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load booked item")
	}
	if !it.IsOwnedBy(requesterID) {
		return nil, errs.Wrapf(ErrForbidden, "booking is visible to booker and owner only")
	}
	return b, nil
}

func (u *bookingUseCaseImpl) ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.State) ([]*booking.Booking, error) {
	if _, err := u.userRepo.FindByID(ctx, bookerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to load booker")
	}
	all, err := u.bookingRepo.FindByBooker(ctx, bookerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load bookings")
	}
	return u.filterByState(all, state), nil
}

func (u *bookingUseCaseImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, state booking.State) ([]*booking.Booking, error) {
	if _, err := u.userRepo.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to load owner")
	}
	all, err := u.bookingRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load bookings")
	}
	return u.filterByState(all, state), nil
}

// Summary derives the last and next approved bookings for an item relative
// to now. Intended for annotating item views shown to the item owner.
func (u *bookingUseCaseImpl) Summary(ctx context.Context, itemID uuid.UUID) (ItemBookingSummary, error) {
	now := u.clock.Now()
	last, err := u.bookingRepo.FindLastApproved(ctx, itemID, now)
	if err != nil {
		return ItemBookingSummary{}, errs.Wrap(err, "failed to load last booking")
	}
	next, err := u.bookingRepo.FindNextApproved(ctx, itemID, now)
	if err != nil {
		return ItemBookingSummary{}, errs.Wrap(err, "failed to load next booking")
	}
	return ItemBookingSummary{Last: last, Next: next}, nil
}

func (u *bookingUseCaseImpl) findBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Wrap(err, "failed to load booking")
	}
	return b, nil
}

func (u *bookingUseCaseImpl) filterByState(all []*booking.Booking, state booking.State) []*booking.Booking {
	now := u.clock.Now()
	out := make([]*booking.Booking, 0, len(all))
	for _, b := range all {
		if b.MatchesState(state, now) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start().After(out[j].Start())
	})
	return out
}
