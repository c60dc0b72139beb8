package repository

import (
	"context"
	"errors"
	"time"

	"lendly/internal/domain/booking"
	"lendly/internal/infra"
	"lendly/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

var _ usecase.BookingRepository = (*BookingRepository)(nil)

const bookingColumns = `id, item_id, booker_id, start_at, end_at, status, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID(), b.ItemID(), b.BookerID(), b.Start(), b.End(), string(b.Status()), b.CreatedAt(), b.UpdatedAt())
	return wrapPgErr("failed to insert booking", err)
}

// UpdateStatus only moves bookings out of WAITING. The status guard makes the
// transition atomic so two concurrent decisions cannot both take effect.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bookings SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`,
		b.ID(), string(b.Status()), b.UpdatedAt(), string(booking.StatusWaiting))
	if err != nil {
		return wrapPgErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		var current string
		err := r.pool.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, b.ID()).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		if err != nil {
			return wrapPgErr("failed to check booking status", err)
		}
		return infra.WrapRepoErr("booking already decided", nil, infra.KindConflict)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, wrapPgErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE item_id = $1
		ORDER BY start_at DESC`, itemID)
	if err != nil {
		return nil, wrapPgErr("failed to query item bookings", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) FindByBooker(ctx context.Context, bookerID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE booker_id = $1
		ORDER BY start_at DESC`, bookerID)
	if err != nil {
		return nil, wrapPgErr("failed to query booker bookings", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.item_id, b.booker_id, b.start_at, b.end_at, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1
		ORDER BY b.start_at DESC`, ownerID)
	if err != nil {
		return nil, wrapPgErr("failed to query owner bookings", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) FindLastApproved(ctx context.Context, itemID uuid.UUID, before time.Time) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND end_at < $2
		ORDER BY end_at DESC
		LIMIT 1`, itemID, before)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapPgErr("failed to find last approved booking", err)
	}
	return b, nil
}

func (r *BookingRepository) FindNextApproved(ctx context.Context, itemID uuid.UUID, after time.Time) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND start_at > $2
		ORDER BY start_at ASC
		LIMIT 1`, itemID, after)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapPgErr("failed to find next approved booking", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, itemID, bookerID uuid.UUID
		start, end           time.Time
		status               string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &itemID, &bookerID, &start, &end, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return booking.Reconstruct(id, itemID, bookerID, start, end, booking.Status(status), createdAt, updatedAt), nil
}

func collectBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	defer rows.Close()
	out := []*booking.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read bookings", err)
	}
	return out, nil
}
