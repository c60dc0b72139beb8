//go:build unit

package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"lendly/internal/domain/comment"
	"lendly/internal/usecase"
	"lendly/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	*engineFixture
	comments usecase.CommentUseCase
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	f := newEngineFixture(t)
	comments := usecase.NewCommentUseCase(
		f.store.Comments(), f.store.Bookings(), f.store.Items(), f.store.Users(), f.clock,
	)
	return &commentFixture{engineFixture: f, comments: comments}
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed after approved booking ends", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(2))
		f.clock.Set(f.h(3))

		v, err := f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "  great drill  ")
		require.NoError(t, err)
		assert.Equal(t, "great drill", v.Comment.Text())
		assert.Equal(t, f.h(3), v.Comment.Created())
		assert.Equal(t, f.booker.Name(), v.AuthorName)

		stored, err := f.store.Comments().FindByItem(ctx, f.item.ID())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, v.Comment.ID(), stored[0].ID())
	})

	t.Run("whitespace-only text is rejected", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(2))
		f.clock.Set(f.h(3))

		_, err := f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "   \t ")
		assert.ErrorIs(t, err, comment.ErrEmptyText)

		stored, err := f.store.Comments().FindByItem(ctx, f.item.ID())
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("over-long text is rejected", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(2))
		f.clock.Set(f.h(3))

		long := strings.Repeat("é", comment.MaxTextLength)
		_, err := f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), long)
		assert.ErrorIs(t, err, comment.ErrTextTooLong)
	})

	t.Run("text at the rune limit is accepted", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(2))
		f.clock.Set(f.h(3))

		exact := strings.Repeat("ü", comment.MaxTextLength)
		v, err := f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), exact)
		require.NoError(t, err)
		assert.Equal(t, exact, v.Comment.Text())
		assert.True(t, utf8.ValidString(v.Comment.Text()))
	})

	t.Run("denied while booking is still running", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(4))
		f.clock.Set(f.h(2))

		_, err := f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "too early")
		assert.ErrorIs(t, err, comment.ErrNotAllowed)
	})

	t.Run("denied exactly at booking end", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(2))
		f.clock.Set(f.h(2))

		_, err := f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "on the boundary")
		assert.ErrorIs(t, err, comment.ErrNotAllowed)
	})

	t.Run("allowed once the clock advances past the end", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(2))
		f.clock.Set(f.h(2))

		_, err := f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "still waiting")
		require.ErrorIs(t, err, comment.ErrNotAllowed)

		f.clock.Advance(time.Second)
		_, err = f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "done now")
		assert.NoError(t, err)
	})

	t.Run("denied with only a waiting booking", func(t *testing.T) {
		f := newCommentFixture(t)
		_, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)
		f.clock.Set(f.h(3))

		_, err = f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "never approved")
		assert.ErrorIs(t, err, comment.ErrNotAllowed)
	})

	t.Run("denied with only a rejected booking", func(t *testing.T) {
		f := newCommentFixture(t)
		b, err := f.engine.Create(ctx, f.booker.ID(), f.input(f.h(1), f.h(2)))
		require.NoError(t, err)
		_, err = f.engine.Decide(ctx, f.owner.ID(), b.ID(), false)
		require.NoError(t, err)
		f.clock.Set(f.h(3))

		_, err = f.comments.AddComment(ctx, f.booker.ID(), f.item.ID(), "was rejected")
		assert.ErrorIs(t, err, comment.ErrNotAllowed)
	})

	t.Run("denied for users without bookings", func(t *testing.T) {
		f := newCommentFixture(t)
		f.seedApproved(t, f.h(1), f.h(2))
		f.clock.Set(f.h(3))

		stranger := builder.NewUserBuilder().MustBuild()
		require.NoError(t, f.store.Users().Create(ctx, stranger))

		_, err := f.comments.AddComment(ctx, stranger.ID(), f.item.ID(), "drive-by review")
		assert.ErrorIs(t, err, comment.ErrNotAllowed)
	})

	t.Run("unknown author", func(t *testing.T) {
		f := newCommentFixture(t)
		_, err := f.comments.AddComment(ctx, uuid.New(), f.item.ID(), "who am I")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newCommentFixture(t)
		_, err := f.comments.AddComment(ctx, f.booker.ID(), uuid.New(), "what item")
		assert.ErrorIs(t, err, usecase.ErrItemNotFound)
	})
}
