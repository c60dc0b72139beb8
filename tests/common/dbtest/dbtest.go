//go:build e2e

package dbtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetDB truncates every business table so each subtest starts clean.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx,
		"TRUNCATE TABLE comments, bookings, items, item_requests, users CASCADE")
	return err
}

// InsertApprovedBooking writes a booking row directly, bypassing the
// start-not-in-past validation. Used to seed history for comment tests.
func InsertApprovedBooking(pool *pgxpool.Pool, itemID, bookerID uuid.UUID, start, end time.Time) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'APPROVED', $4, $4)`,
		id, itemID, bookerID, start, end)
	return id, err
}
