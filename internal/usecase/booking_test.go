//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"lendly/internal/domain/booking"
	"lendly/internal/domain/item"
	"lendly/internal/domain/user"
	"lendly/internal/infra"
	"lendly/internal/infra/memstore"
	"lendly/internal/pkg/clock"
	"lendly/internal/usecase"
	"lendly/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

type engineFixture struct {
	store  *memstore.Store
	clock  *clock.MockClock
	engine usecase.BookingUseCase
	owner  *user.User
	booker *user.User
	item   *item.Item
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	clk := clock.NewMockClock(base)
	engine := usecase.NewBookingUseCase(store.Bookings(), store.Items(), store.Users(), clk)

	owner := builder.NewUserBuilder().MustBuild()
	booker := builder.NewUserBuilder().MustBuild()
	require.NoError(t, store.Users().Create(ctx, owner))
	require.NoError(t, store.Users().Create(ctx, booker))

	it := builder.NewItemBuilder().WithOwner(owner.ID()).MustBuild()
	require.NoError(t, store.Items().Create(ctx, it))

	return &engineFixture{
		store:  store,
		clock:  clk,
		engine: engine,
		owner:  owner,
		booker: booker,
		item:   it,
	}
}

func (f *engineFixture) input(start, end time.Time) usecase.CreateBookingInput {
	return usecase.CreateBookingInput{ItemID: f.item.ID(), Start: start, End: end}
}

func (f *engineFixture) h(n int) time.Time {
	return base.Add(time.Duration(n) * time.Hour)
}

// seedApproved creates and approves a booking through the engine itself.
func (f *engineFixture) seedApproved(t *testing.T, start, end time.Time) *booking.Booking {
	t.Helper()
	ctx := context.Background()
	b, err := f.engine.Create(ctx, f.booker.ID(), f.input(start, end))
	require.NoError(t, err)
	b, err = f.engine.Decide(ctx, f.owner.ID(), b.ID(), true)
	require.NoError(t, err)
	return b
}

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success starts WAITING and persists", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusWaiting, b.Status())
		assert.Equal(t, f.booker.ID(), b.BookerID())

		stored, err := f.store.Bookings().FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, b.ID(), stored.ID())
	})

	t.Run("unknown booker", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.Create(ctx, uuid.New(), f.input(f.h(1), f.h(2)))
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newEngineFixture(t)
		in := f.input(f.h(1), f.h(2))
		in.ItemID = uuid.New()
		_, err := f.engine.Create(ctx, f.booker.ID(), in)
		assert.ErrorIs(t, err, usecase.ErrItemNotFound)
	})

	t.Run("unavailable item", func(t *testing.T) {
		f := newEngineFixture(t)
		unavailable := builder.NewItemBuilder().WithOwner(f.owner.ID()).WithAvailable(false).MustBuild()
		require.NoError(t, f.store.Items().Create(ctx, unavailable))

		_, err := f.engine.Create(ctx, f.booker.ID(), usecase.CreateBookingInput{
			ItemID: unavailable.ID(), Start: f.h(1), End: f.h(2),
		})
		assert.ErrorIs(t, err, usecase.ErrItemUnavailable)
	})

	t.Run("owner booking own item", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.Create(ctx, f.owner.ID(), f.input(f.h(1), f.h(2)))
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("availability is checked before ownership", func(t *testing.T) {
		f := newEngineFixture(t)
		unavailable := builder.NewItemBuilder().WithOwner(f.owner.ID()).WithAvailable(false).MustBuild()
		require.NoError(t, f.store.Items().Create(ctx, unavailable))

		_, err := f.engine.Create(ctx, f.owner.ID(), usecase.CreateBookingInput{
			ItemID: unavailable.ID(), Start: f.h(1), End: f.h(2),
		})
		assert.ErrorIs(t, err, usecase.ErrItemUnavailable)
	})

	t.Run("end not after start", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(2), f.h(2)))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})

	t.Run("start in the past", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(-2), f.h(2)))
		assert.ErrorIs(t, err, booking.ErrStartInPast)
	})

	t.Run("start exactly at now is accepted", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(base, f.h(2)))
		assert.NoError(t, err)
	})
}

func TestBookingCreateConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("overlap with approved booking", func(t *testing.T) {
		f := newEngineFixture(t)
		f.seedApproved(t, f.h(1), f.h(3))

		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(2), f.h(4)))
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)
	})

	t.Run("touching endpoints conflict", func(t *testing.T) {
		f := newEngineFixture(t)
		f.seedApproved(t, f.h(1), f.h(3))

		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(3), f.h(5)))
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)

		_, err = f.engine.Create(ctx, f.booker.ID(), f.input(base, f.h(1)))
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)
	})

	t.Run("disjoint from approved booking", func(t *testing.T) {
		f := newEngineFixture(t)
		f.seedApproved(t, f.h(1), f.h(3))

		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(4), f.h(5)))
		assert.NoError(t, err)
	})

	t.Run("waiting bookings never conflict", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(3)))
		require.NoError(t, err)

		_, err = f.engine.Create(ctx, f.booker.ID(), f.input(f.h(2), f.h(4)))
		assert.NoError(t, err)
	})

	t.Run("rejected bookings never conflict", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(3)))
		require.NoError(t, err)
		_, err = f.engine.Decide(ctx, f.owner.ID(), b.ID(), false)
		require.NoError(t, err)

		_, err = f.engine.Create(ctx, f.booker.ID(), f.input(f.h(2), f.h(4)))
		assert.NoError(t, err)
	})
}

func TestBookingDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("owner approves", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		decided, err := f.engine.Decide(ctx, f.owner.ID(), b.ID(), true)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, decided.Status())
	})

	t.Run("owner rejects", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		decided, err := f.engine.Decide(ctx, f.owner.ID(), b.ID(), false)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusRejected, decided.Status())
	})

	t.Run("booker cannot decide", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		_, err = f.engine.Decide(ctx, f.booker.ID(), b.ID(), true)
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("deciding twice fails", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)
		_, err = f.engine.Decide(ctx, f.owner.ID(), b.ID(), true)
		require.NoError(t, err)

		_, err = f.engine.Decide(ctx, f.owner.ID(), b.ID(), false)
		assert.ErrorIs(t, err, booking.ErrAlreadyDecided)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.Decide(ctx, f.owner.ID(), uuid.New(), true)
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})

	t.Run("stale decision cannot overwrite a settled booking", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		// Second decider read the booking while it was still WAITING.
		stale := booking.Reconstruct(
			b.ID(), b.ItemID(), b.BookerID(), b.Start(), b.End(),
			booking.StatusWaiting, b.CreatedAt(), b.UpdatedAt(),
		)

		_, err = f.engine.Decide(ctx, f.owner.ID(), b.ID(), true)
		require.NoError(t, err)

		require.NoError(t, stale.Decide(false, f.clock.Now()))
		err = f.store.Bookings().UpdateStatus(ctx, stale)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))

		current, err := f.store.Bookings().FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, current.Status())
	})
}

func TestBookingGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("booker and owner can read", func(t *testing.T) {
		f := newEngineFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		_, err = f.engine.GetByID(ctx, f.booker.ID(), b.ID())
		assert.NoError(t, err)
		_, err = f.engine.GetByID(ctx, f.owner.ID(), b.ID())
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		f := newEngineFixture(t)
		stranger := builder.NewUserBuilder().MustBuild()
		require.NoError(t, f.store.Users().Create(ctx, stranger))

		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		_, err = f.engine.GetByID(ctx, stranger.ID(), b.ID())
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.GetByID(ctx, f.booker.ID(), uuid.New())
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})
}

func TestBookingListByBooker(t *testing.T) {
	ctx := context.Background()

	seedBookings := func(t *testing.T, f *engineFixture) (past, current, future *booking.Booking) {
		// current booking spans h(-1)..h(1) around now; seed it while the
		// clock is behind, then move the clock into the interval.
		f.clock.Set(f.h(-5))
		var err error
		past, err = f.engine.Create(ctx, f.booker.ID(), f.input(f.h(-4), f.h(-3)))
		require.NoError(t, err)
		current, err = f.engine.Create(ctx, f.booker.ID(), f.input(f.h(-1), f.h(1)))
		require.NoError(t, err)
		future, err = f.engine.Create(ctx, f.booker.ID(), f.input(f.h(2), f.h(3)))
		require.NoError(t, err)
		f.clock.Set(base)
		return past, current, future
	}

	t.Run("ALL returns everything newest start first", func(t *testing.T) {
		f := newEngineFixture(t)
		past, current, future := seedBookings(t, f)

		got, err := f.engine.ListByBooker(ctx, f.booker.ID(), booking.StateAll)
		require.NoError(t, err)

		var ids []uuid.UUID
		for _, b := range got {
			ids = append(ids, b.ID())
		}
		want := []uuid.UUID{future.ID(), current.ID(), past.ID()}
		if diff := cmp.Diff(want, ids); diff != "" {
			t.Errorf("booking order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("temporal buckets partition the bookings", func(t *testing.T) {
		f := newEngineFixture(t)
		past, current, future := seedBookings(t, f)

		for _, tc := range []struct {
			state booking.State
			want  uuid.UUID
		}{
			{booking.StatePast, past.ID()},
			{booking.StateCurrent, current.ID()},
			{booking.StateFuture, future.ID()},
		} {
			got, err := f.engine.ListByBooker(ctx, f.booker.ID(), tc.state)
			require.NoError(t, err)
			require.Len(t, got, 1, "state %s", tc.state)
			assert.Equal(t, tc.want, got[0].ID(), "state %s", tc.state)
		}
	})

	t.Run("WAITING and REJECTED filter on status", func(t *testing.T) {
		f := newEngineFixture(t)
		_, current, _ := seedBookings(t, f)
		_, err := f.engine.Decide(ctx, f.owner.ID(), current.ID(), false)
		require.NoError(t, err)

		waiting, err := f.engine.ListByBooker(ctx, f.booker.ID(), booking.StateWaiting)
		require.NoError(t, err)
		assert.Len(t, waiting, 2)

		rejected, err := f.engine.ListByBooker(ctx, f.booker.ID(), booking.StateRejected)
		require.NoError(t, err)
		require.Len(t, rejected, 1)
		assert.Equal(t, current.ID(), rejected[0].ID())
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newEngineFixture(t)
		_, err := f.engine.ListByBooker(ctx, uuid.New(), booking.StateAll)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("no bookings yields empty list", func(t *testing.T) {
		f := newEngineFixture(t)
		got, err := f.engine.ListByBooker(ctx, f.booker.ID(), booking.StateAll)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBookingListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("sees bookings across all owned items", func(t *testing.T) {
		f := newEngineFixture(t)
		second := builder.NewItemBuilder().WithOwner(f.owner.ID()).MustBuild()
		require.NoError(t, f.store.Items().Create(ctx, second))

		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)
		_, err = f.engine.Create(ctx, f.booker.ID(), usecase.CreateBookingInput{
			ItemID: second.ID(), Start: f.h(3), End: f.h(4),
		})
		require.NoError(t, err)

		got, err := f.engine.ListByOwner(ctx, f.owner.ID(), booking.StateAll)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("other owners see nothing", func(t *testing.T) {
		f := newEngineFixture(t)
		other := builder.NewUserBuilder().MustBuild()
		require.NoError(t, f.store.Users().Create(ctx, other))

		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)

		got, err := f.engine.ListByOwner(ctx, other.ID(), booking.StateAll)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBookingSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("closest approved bookings around now", func(t *testing.T) {
		f := newEngineFixture(t)
		f.clock.Set(f.h(-10))
		older := f.seedApproved(t, f.h(-9), f.h(-8))
		last := f.seedApproved(t, f.h(-7), f.h(-6))
		next := f.seedApproved(t, f.h(1), f.h(2))
		later := f.seedApproved(t, f.h(3), f.h(4))
		f.clock.Set(base)

		sum, err := f.engine.Summary(ctx, f.item.ID())
		require.NoError(t, err)
		require.NotNil(t, sum.Last)
		require.NotNil(t, sum.Next)
		assert.Equal(t, last.ID(), sum.Last.ID())
		assert.Equal(t, next.ID(), sum.Next.ID())
		assert.NotEqual(t, older.ID(), sum.Last.ID())
		assert.NotEqual(t, later.ID(), sum.Next.ID())
	})

	t.Run("waiting bookings are ignored", func(t *testing.T) {
		f := newEngineFixture(t)
		f.clock.Set(f.h(-10))
		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(-9), f.h(-8)))
		require.NoError(t, err)
		_, err = f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)
		f.clock.Set(base)

		sum, err := f.engine.Summary(ctx, f.item.ID())
		require.NoError(t, err)
		assert.Nil(t, sum.Last)
		assert.Nil(t, sum.Next)
	})

	t.Run("no bookings at all", func(t *testing.T) {
		f := newEngineFixture(t)
		sum, err := f.engine.Summary(ctx, f.item.ID())
		require.NoError(t, err)
		assert.Nil(t, sum.Last)
		assert.Nil(t, sum.Next)
	})
}
