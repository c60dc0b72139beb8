package components

import (
	"lendly/internal/infra/memstore"
	repo_impl "lendly/internal/infra/repository"
	"lendly/internal/pkg/config"
	"lendly/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewStores,
	),
)

// Stores bundles one implementation of every repository port.
type Stores struct {
	fx.Out

	Users    usecase.UserRepository
	Items    usecase.ItemRepository
	Bookings usecase.BookingRepository
	Comments usecase.CommentRepository
	Requests usecase.RequestRepository
}

// NewStores selects the backend from STORE_DRIVER. Both backends satisfy the
// same ports, so everything above this layer is driver-agnostic.
func NewStores(cfg config.Config, pool *pgxpool.Pool) Stores {
	if cfg.Store.Driver == "memory" {
		s := memstore.New()
		return Stores{
			Users:    s.Users(),
			Items:    s.Items(),
			Bookings: s.Bookings(),
			Comments: s.Comments(),
			Requests: s.Requests(),
		}
	}
	return Stores{
		Users:    repo_impl.NewUserRepository(pool),
		Items:    repo_impl.NewItemRepository(pool),
		Bookings: repo_impl.NewBookingRepository(pool),
		Comments: repo_impl.NewCommentRepository(pool),
		Requests: repo_impl.NewRequestRepository(pool),
	}
}
