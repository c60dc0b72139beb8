package components

import (
	"lendly/internal/pkg/clock"
	"lendly/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewUserUseCase,
		usecase.NewBookingUseCase,
		usecase.NewCommentUseCase,
		usecase.NewItemUseCase,
		usecase.NewRequestUseCase,
	),
)
