package usecase

import (
	"context"
	"strings"

	"lendly/internal/domain/item"
	"lendly/internal/infra"
	"lendly/internal/pkg/clock"
	"lendly/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *uuid.UUID
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemDetails is an item together with its comments and, for the owner, the
// closest approved bookings around now.
type ItemDetails struct {
	Item     *item.Item
	Comments []*CommentView
	Bookings ItemBookingSummary
}

type ItemUseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (*item.Item, error)
	Update(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, input UpdateItemInput) (*item.Item, error)
	GetByID(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*ItemDetails, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemDetails, error)
	Search(ctx context.Context, text string) ([]*item.Item, error)
}

type itemUseCaseImpl struct {
	itemRepo    ItemRepository
	userRepo    UserRepository
	requestRepo RequestRepository
	commentRepo CommentRepository
	bookings    BookingUseCase
	clock       clock.Clock
}

func NewItemUseCase(
	itemRepo ItemRepository,
	userRepo UserRepository,
	requestRepo RequestRepository,
	commentRepo CommentRepository,
	bookings BookingUseCase,
	clk clock.Clock,
) ItemUseCase {
	return &itemUseCaseImpl{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		commentRepo: commentRepo,
		bookings:    bookings,
		clock:       clk,
	}
}

func (u *itemUseCaseImpl) Create(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (*item.Item, error) {
	if _, err := u.userRepo.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to load owner")
	}
	if input.RequestID != nil {
		if _, err := u.requestRepo.FindByID(ctx, *input.RequestID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrRequestNotFound)
			}
			return nil, errs.Wrap(err, "failed to load item request")
		}
	}

	it, err := item.NewItem(ownerID, input.Name, input.Description, input.Available, input.RequestID, u.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := u.itemRepo.Create(ctx, it); err != nil {
		return nil, errs.Wrap(err, "failed to persist item")
	}
	return it, nil
}

// Update applies a partial edit. Only the owner may edit an item.
func (u *itemUseCaseImpl) Update(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, input UpdateItemInput) (*item.Item, error) {
	it, err := u.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(userID) {
		return nil, errs.Wrapf(ErrForbidden, "only the owner may edit item %s", itemID)
	}
	if err := it.Update(input.Name, input.Description, input.Available, u.clock.Now()); err != nil {
		return nil, err
	}
	if err := u.itemRepo.Update(ctx, it); err != nil {
		return nil, errs.Wrap(err, "failed to persist item")
	}
	return it, nil
}

// GetByID returns the item with its comments. The booking summary is filled
// in only when the requester owns the item.
func (u *itemUseCaseImpl) GetByID(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*ItemDetails, error) {
	it, err := u.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	details := &ItemDetails{Item: it}

	details.Comments, err = u.commentViews(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsOwnedBy(userID) {
		details.Bookings, err = u.bookings.Summary(ctx, itemID)
		if err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (u *itemUseCaseImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemDetails, error) {
	if _, err := u.userRepo.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to load owner")
	}
	items, err := u.itemRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load items")
	}

	out := make([]*ItemDetails, 0, len(items))
	for _, it := range items {
		details := &ItemDetails{Item: it}
		details.Comments, err = u.commentViews(ctx, it.ID())
		if err != nil {
			return nil, err
		}
		details.Bookings, err = u.bookings.Summary(ctx, it.ID())
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

// Search returns available items matching the text. Blank text yields an
// empty result rather than an error.
func (u *itemUseCaseImpl) Search(ctx context.Context, text string) ([]*item.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*item.Item{}, nil
	}
	items, err := u.itemRepo.Search(ctx, text)
	if err != nil {
		return nil, errs.Wrap(err, "failed to search items")
	}
	return items, nil
}

// commentViews loads an item's comments and resolves author names. A comment
// may outlive its author, in which case the name is left blank.
func (u *itemUseCaseImpl) commentViews(ctx context.Context, itemID uuid.UUID) ([]*CommentView, error) {
	cs, err := u.commentRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load comments")
	}

	names := make(map[uuid.UUID]string, len(cs))
	views := make([]*CommentView, 0, len(cs))
	for _, c := range cs {
		name, ok := names[c.AuthorID()]
		if !ok {
			author, err := u.userRepo.FindByID(ctx, c.AuthorID())
			switch {
			case err == nil:
				name = author.Name()
			case infra.IsKind(err, infra.KindNotFound):
				name = ""
			default:
				return nil, errs.Wrap(err, "failed to load comment author")
			}
			names[c.AuthorID()] = name
		}
		views = append(views, &CommentView{Comment: c, AuthorName: name})
	}
	return views, nil
}

func (u *itemUseCaseImpl) findItem(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	it, err := u.itemRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, errs.Wrap(err, "failed to load item")
	}
	return it, nil
}
