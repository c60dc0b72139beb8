package comment

import (
	"context"
	"time"

	"lendly/internal/pkg/clock"

	"github.com/google/uuid"
)

type Services struct {
	Clock       clock.Clock
	Eligibility EligibilityChecker
}

type EligibilityInput struct {
	AuthorID uuid.UUID
	ItemID   uuid.UUID
	Now      time.Time
}

// EligibilityChecker decides whether a user may comment on an item: the author
// must hold at least one APPROVED booking on the item that ended strictly
// before now. Returns ErrNotAllowed when the user does not qualify.
type EligibilityChecker interface {
	CanComment(ctx context.Context, input EligibilityInput) error
}
