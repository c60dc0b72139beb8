//go:build unit

package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"lendly/internal/domain/request"
	"lendly/internal/usecase"
	"lendly/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	*engineFixture
	requests usecase.RequestUseCase
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	f := newEngineFixture(t)
	requests := usecase.NewRequestUseCase(
		f.store.Requests(), f.store.Items(), f.store.Users(), f.clock,
	)
	return &requestFixture{engineFixture: f, requests: requests}
}

func TestRequestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newRequestFixture(t)
		r, err := f.requests.Create(ctx, f.booker.ID(), "looking for a projector")
		require.NoError(t, err)
		assert.Equal(t, f.booker.ID(), r.RequestorID())
	})

	t.Run("blank description", func(t *testing.T) {
		f := newRequestFixture(t)
		_, err := f.requests.Create(ctx, f.booker.ID(), "   ")
		assert.ErrorIs(t, err, request.ErrEmptyDescription)
	})

	t.Run("unknown requestor", func(t *testing.T) {
		f := newRequestFixture(t)
		_, err := f.requests.Create(ctx, uuid.New(), "a projector")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestRequestGetOwn(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture(t)

	first, err := f.requests.Create(ctx, f.booker.ID(), "projector")
	require.NoError(t, err)
	second, err := f.requests.Create(ctx, f.booker.ID(), "canoe")
	require.NoError(t, err)
	_, err = f.requests.Create(ctx, f.owner.ID(), "lawnmower")
	require.NoError(t, err)

	answer := builder.NewItemBuilder().WithOwner(f.owner.ID()).WithRequestID(first.ID()).MustBuild()
	require.NoError(t, f.store.Items().Create(ctx, answer))

	ds, err := f.requests.GetOwn(ctx, f.booker.ID())
	require.NoError(t, err)
	require.Len(t, ds, 2)

	// newest first
	assert.Equal(t, second.ID(), ds[0].Request.ID())
	assert.Equal(t, first.ID(), ds[1].Request.ID())

	assert.Empty(t, ds[0].Items)
	require.Len(t, ds[1].Items, 1)
	assert.Equal(t, answer.ID(), ds[1].Items[0].ID())
}

func TestRequestGetAll(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture(t)

	for i := 0; i < 5; i++ {
		_, err := f.requests.Create(ctx, f.owner.ID(), fmt.Sprintf("other request %d", i))
		require.NoError(t, err)
	}
	_, err := f.requests.Create(ctx, f.booker.ID(), "own request")
	require.NoError(t, err)

	t.Run("excludes own requests", func(t *testing.T) {
		ds, err := f.requests.GetAll(ctx, f.booker.ID(), 0, 10)
		require.NoError(t, err)
		assert.Len(t, ds, 5)
		for _, d := range ds {
			assert.NotEqual(t, f.booker.ID(), d.Request.RequestorID())
		}
	})

	t.Run("pages with from and size", func(t *testing.T) {
		page1, err := f.requests.GetAll(ctx, f.booker.ID(), 0, 2)
		require.NoError(t, err)
		page2, err := f.requests.GetAll(ctx, f.booker.ID(), 2, 2)
		require.NoError(t, err)
		page3, err := f.requests.GetAll(ctx, f.booker.ID(), 4, 2)
		require.NoError(t, err)

		assert.Len(t, page1, 2)
		assert.Len(t, page2, 2)
		assert.Len(t, page3, 1)

		seen := map[uuid.UUID]bool{}
		for _, d := range append(append(page1, page2...), page3...) {
			assert.False(t, seen[d.Request.ID()], "request repeated across pages")
			seen[d.Request.ID()] = true
		}
	})

	t.Run("offset past the end", func(t *testing.T) {
		ds, err := f.requests.GetAll(ctx, f.booker.ID(), 50, 10)
		require.NoError(t, err)
		assert.Empty(t, ds)
	})
}

func TestRequestGetByID(t *testing.T) {
	ctx := context.Background()
	f := newRequestFixture(t)

	r, err := f.requests.Create(ctx, f.booker.ID(), "projector")
	require.NoError(t, err)

	t.Run("visible to any known user", func(t *testing.T) {
		d, err := f.requests.GetByID(ctx, f.owner.ID(), r.ID())
		require.NoError(t, err)
		assert.Equal(t, r.ID(), d.Request.ID())
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := f.requests.GetByID(ctx, f.owner.ID(), uuid.New())
		assert.ErrorIs(t, err, usecase.ErrRequestNotFound)
	})

	t.Run("unknown caller", func(t *testing.T) {
		_, err := f.requests.GetByID(ctx, uuid.New(), r.ID())
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}
