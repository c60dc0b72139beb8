package usecase

import (
	"context"

	"lendly/internal/domain/booking"
	"lendly/internal/domain/comment"
	"lendly/internal/infra"
	"lendly/internal/metrics"
	"lendly/internal/pkg/clock"
	"lendly/internal/pkg/errs"

	"github.com/google/uuid"
)

// CommentView pairs a comment with its author's display name, which lives on
// the user aggregate rather than the comment itself.
type CommentView struct {
	Comment    *comment.Comment
	AuthorName string
}

type CommentUseCase interface {
	AddComment(ctx context.Context, authorID uuid.UUID, itemID uuid.UUID, text string) (*CommentView, error)
}

type commentUseCaseImpl struct {
	commentRepo CommentRepository
	bookingRepo BookingRepository
	itemRepo    ItemRepository
	userRepo    UserRepository
	clock       clock.Clock
}

func NewCommentUseCase(
	commentRepo CommentRepository,
	bookingRepo BookingRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	clk clock.Clock,
) CommentUseCase {
	return &commentUseCaseImpl{
		commentRepo: commentRepo,
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		clock:       clk,
	}
}

// CanComment checks that the author held an APPROVED booking on the item
// that ended strictly before the given instant. Satisfies
// comment.EligibilityChecker.
func (u *commentUseCaseImpl) CanComment(ctx context.Context, in comment.EligibilityInput) error {
	bookings, err := u.bookingRepo.FindByItem(ctx, in.ItemID)
	if err != nil {
		return errs.Wrap(err, "failed to load item bookings")
	}
	for _, b := range bookings {
		if b.BookerID() == in.AuthorID &&
			b.Status() == booking.StatusApproved &&
			b.End().Before(in.Now) {
			return nil
		}
	}
	return errs.Wrapf(comment.ErrNotAllowed, "user %s on item %s", in.AuthorID, in.ItemID)
}

func (u *commentUseCaseImpl) AddComment(ctx context.Context, authorID uuid.UUID, itemID uuid.UUID, text string) (*CommentView, error) {
	author, err := u.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to load author")
	}
	if _, err := u.itemRepo.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, errs.Wrap(err, "failed to load item")
	}

	c, err := comment.New(ctx, comment.Services{Clock: u.clock, Eligibility: u}, authorID, itemID, text)
	if err != nil {
		return nil, err
	}
	if err := u.commentRepo.Create(ctx, c); err != nil {
		return nil, errs.Wrap(err, "failed to persist comment")
	}
	metrics.CommentsPosted.Inc()
	return &CommentView{Comment: c, AuthorName: author.Name()}, nil
}
