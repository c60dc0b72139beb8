package memstore

import (
	"context"
	"sort"
	"time"

	"lendly/internal/domain/booking"
	"lendly/internal/infra"
	"lendly/internal/usecase"

	"github.com/google/uuid"
)

type BookingStore struct {
	s *Store
}

var _ usecase.BookingRepository = (*BookingStore)(nil)

func (st *BookingStore) Create(ctx context.Context, b *booking.Booking) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.bookings[b.ID()] = b
	st.s.nextSeq(b.ID())
	return nil
}

// UpdateStatus only moves bookings out of WAITING, matching the guarded
// update in the SQL repository.
func (st *BookingStore) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	current, ok := st.s.bookings[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", errNoRows, infra.KindNotFound)
	}
	if current.Status() != booking.StatusWaiting {
		return infra.WrapRepoErr("booking already decided", nil, infra.KindConflict)
	}
	st.s.bookings[b.ID()] = b
	return nil
}

func (st *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	b, ok := st.s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errNoRows, infra.KindNotFound)
	}
	return b, nil
}

func (st *BookingStore) FindByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Booking, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return st.filter(func(b *booking.Booking) bool {
		return b.ItemID() == itemID
	}), nil
}

func (st *BookingStore) FindByBooker(ctx context.Context, bookerID uuid.UUID) ([]*booking.Booking, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return st.filter(func(b *booking.Booking) bool {
		return b.BookerID() == bookerID
	}), nil
}

func (st *BookingStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*booking.Booking, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	return st.filter(func(b *booking.Booking) bool {
		it, ok := st.s.items[b.ItemID()]
		return ok && it.OwnerID() == ownerID
	}), nil
}

func (st *BookingStore) FindLastApproved(ctx context.Context, itemID uuid.UUID, before time.Time) (*booking.Booking, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	var last *booking.Booking
	for _, b := range st.s.bookings {
		if b.ItemID() != itemID || b.Status() != booking.StatusApproved || !b.End().Before(before) {
			continue
		}
		if last == nil || b.End().After(last.End()) {
			last = b
		}
	}
	return last, nil
}

func (st *BookingStore) FindNextApproved(ctx context.Context, itemID uuid.UUID, after time.Time) (*booking.Booking, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	var next *booking.Booking
	for _, b := range st.s.bookings {
		if b.ItemID() != itemID || b.Status() != booking.StatusApproved || !b.Start().After(after) {
			continue
		}
		if next == nil || b.Start().Before(next.Start()) {
			next = b
		}
	}
	return next, nil
}

// filter returns matching bookings ordered by start descending, as the SQL
// repository does. Callers must hold at least a read lock.
func (st *BookingStore) filter(keep func(*booking.Booking) bool) []*booking.Booking {
	out := []*booking.Booking{}
	for _, b := range st.s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start().After(out[j].Start())
	})
	return out
}
