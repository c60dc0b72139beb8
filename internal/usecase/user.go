package usecase

import (
	"context"

	"lendly/internal/domain/user"
	"lendly/internal/infra"
	"lendly/internal/pkg/clock"
	"lendly/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateUserInput struct {
	Name  string
	Email string
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*user.User, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*user.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userUseCaseImpl struct {
	userRepo UserRepository
	clock    clock.Clock
}

func NewUserUseCase(userRepo UserRepository, clk clock.Clock) UserUseCase {
	return &userUseCaseImpl{userRepo: userRepo, clock: clk}
}

func (u *userUseCaseImpl) Create(ctx context.Context, input CreateUserInput) (*user.User, error) {
	usr, err := user.NewUser(input.Name, input.Email, u.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.Create(ctx, usr); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailTaken)
		}
		return nil, errs.Wrap(err, "failed to persist user")
	}
	return usr, nil
}

func (u *userUseCaseImpl) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*user.User, error) {
	usr, err := u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := usr.Update(input.Name, input.Email, u.clock.Now()); err != nil {
		return nil, err
	}
	if err := u.userRepo.Update(ctx, usr); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrEmailTaken)
		}
		return nil, errs.Wrap(err, "failed to persist user")
	}
	return usr, nil
}

func (u *userUseCaseImpl) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	usr, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Wrap(err, "failed to load user")
	}
	return usr, nil
}

func (u *userUseCaseImpl) List(ctx context.Context) ([]*user.User, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load users")
	}
	return users, nil
}

func (u *userUseCaseImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return errs.Mark(err, ErrUserNotFound)
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return errs.Mark(err, ErrUserInUse)
		}
		return errs.Wrap(err, "failed to delete user")
	}
	return nil
}
