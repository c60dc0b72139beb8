package usecase

import (
	"context"

	"lendly/internal/domain/item"
	"lendly/internal/domain/request"
	"lendly/internal/infra"
	"lendly/internal/pkg/clock"
	"lendly/internal/pkg/errs"

	"github.com/google/uuid"
)

// RequestDetails pairs a request with the items listed in answer to it.
type RequestDetails struct {
	Request *request.ItemRequest
	Items   []*item.Item
}

type RequestUseCase interface {
	Create(ctx context.Context, requestorID uuid.UUID, description string) (*request.ItemRequest, error)
	GetOwn(ctx context.Context, requestorID uuid.UUID) ([]*RequestDetails, error)
	GetAll(ctx context.Context, userID uuid.UUID, from, size int) ([]*RequestDetails, error)
	GetByID(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*RequestDetails, error)
}

type requestUseCaseImpl struct {
	requestRepo RequestRepository
	itemRepo    ItemRepository
	userRepo    UserRepository
	clock       clock.Clock
}

func NewRequestUseCase(
	requestRepo RequestRepository,
	itemRepo ItemRepository,
	userRepo UserRepository,
	clk clock.Clock,
) RequestUseCase {
	return &requestUseCaseImpl{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		clock:       clk,
	}
}

func (u *requestUseCaseImpl) Create(ctx context.Context, requestorID uuid.UUID, description string) (*request.ItemRequest, error) {
	if err := u.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	req, err := request.New(requestorID, description, u.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := u.requestRepo.Create(ctx, req); err != nil {
		return nil, errs.Wrap(err, "failed to persist request")
	}
	return req, nil
}

// GetOwn returns the user's requests, newest first, each with its answers.
func (u *requestUseCaseImpl) GetOwn(ctx context.Context, requestorID uuid.UUID) ([]*RequestDetails, error) {
	if err := u.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	reqs, err := u.requestRepo.FindByRequestor(ctx, requestorID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load requests")
	}
	return u.withItems(ctx, reqs)
}

// GetAll pages through other users' requests, newest first.
func (u *requestUseCaseImpl) GetAll(ctx context.Context, userID uuid.UUID, from, size int) ([]*RequestDetails, error) {
	if err := u.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := u.requestRepo.FindAllExcept(ctx, userID, from, size)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load requests")
	}
	return u.withItems(ctx, reqs)
}

func (u *requestUseCaseImpl) GetByID(ctx context.Context, userID uuid.UUID, requestID uuid.UUID) (*RequestDetails, error) {
	if err := u.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	req, err := u.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		return nil, errs.Wrap(err, "failed to load request")
	}
	items, err := u.itemRepo.FindByRequest(ctx, req.ID())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load answering items")
	}
	return &RequestDetails{Request: req, Items: items}, nil
}

func (u *requestUseCaseImpl) checkUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrUserNotFound)
		}
		return errs.Wrap(err, "failed to load user")
	}
	return nil
}

func (u *requestUseCaseImpl) withItems(ctx context.Context, reqs []*request.ItemRequest) ([]*RequestDetails, error) {
	out := make([]*RequestDetails, 0, len(reqs))
	for _, req := range reqs {
		items, err := u.itemRepo.FindByRequest(ctx, req.ID())
		if err != nil {
			return nil, errs.Wrap(err, "failed to load answering items")
		}
		out = append(out, &RequestDetails{Request: req, Items: items})
	}
	return out, nil
}
